package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/deadpool-app/deadpool/internal/draft/events"
)

const (
	consumerName       = "deadpool-notifier"
	natsMaxReconnects  = -1
	natsReconnectWait  = 2 * time.Second
	consumerMaxDeliver = 5
	consumerAckWait    = 30 * time.Second
)

// SMSSender is the outbound text-message capability.
type SMSSender interface {
	SendSMS(ctx context.Context, body string, recipients []string) (string, error)
}

type Config struct {
	NATSUrl       string `yaml:"nats_url"`
	StreamName    string `yaml:"stream_name"`
	FilterSubject string `yaml:"filter_subject"`
	WebsiteURL    string `yaml:"website_url"`
}

func DefaultConfig() Config {
	return Config{
		NATSUrl:       nats.DefaultURL,
		StreamName:    "DEADPOOL_NOTIFY",
		FilterSubject: "deadpool.notify.>",
		WebsiteURL:    "https://deadpool.example.com/drafting",
	}
}

// Consumer drains the notification stream and sends the SMS each event
// describes. Send failures nack for redelivery; the pick the event belongs
// to has long since committed and is never affected.
type Consumer struct {
	nc       *nats.Conn
	js       jetstream.JetStream
	consumer jetstream.Consumer
	sender   SMSSender
	config   Config
}

func NewConsumer(cfg Config, sender SMSSender) (*Consumer, error) {
	opts := []nats.Option{
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(cfg.NATSUrl, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	c := &Consumer{nc: nc, js: js, sender: sender, config: cfg}
	return c, nil
}

// Start binds the durable consumer and begins processing.
func (c *Consumer) Start(ctx context.Context) error {
	stream, err := c.js.Stream(ctx, c.config.StreamName)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumerConfig := jetstream.ConsumerConfig{
		Name:          consumerName,
		Durable:       consumerName,
		Description:   "Deadpool SMS notifier",
		FilterSubject: c.config.FilterSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    consumerMaxDeliver,
		AckWait:       consumerAckWait,
	}

	consumer, err := stream.Consumer(ctx, consumerName)
	if err != nil {
		consumer, err = stream.CreateConsumer(ctx, consumerConfig)
		if err != nil {
			return fmt.Errorf("create consumer: %w", err)
		}
		log.Info().Msg("created JetStream consumer for notifier")
	}
	c.consumer = consumer

	_, err = consumer.Consume(func(msg jetstream.Msg) {
		if err := c.processEvent(ctx, msg); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process notification")
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log.Info().Str("stream", c.config.StreamName).Msg("notifier consuming")
	return nil
}

// envelope matches the outbox publisher's message shape.
type envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
}

func (c *Consumer) processEvent(ctx context.Context, msg jetstream.Msg) error {
	var env envelope
	if err := json.Unmarshal(msg.Data(), &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	body, recipients, err := c.render(env)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		log.Info().Str("event_type", env.EventType).Msg("no recipients, skipping")
		return nil
	}

	sid, err := c.sender.SendSMS(ctx, body, recipients)
	if err != nil {
		return fmt.Errorf("send SMS: %w", err)
	}

	log.Info().
		Str("event_type", env.EventType).
		Str("message_sid", sid).
		Int("recipients", len(recipients)).
		Msg("SMS sent")

	return nil
}

// render turns an event into the message text and recipient list.
func (c *Consumer) render(env envelope) (string, []string, error) {
	switch env.EventType {
	case events.TypePickAnnounced:
		var p events.PickAnnouncedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return "", nil, fmt.Errorf("unmarshal PickAnnounced payload: %w", err)
		}
		return fmt.Sprintf("%s has picked %s", p.PlayerName, p.PersonName), p.Recipients, nil

	case events.TypeNextDrafterAlert:
		var p events.NextDrafterAlertPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return "", nil, fmt.Errorf("unmarshal NextDrafterAlert payload: %w", err)
		}
		body := fmt.Sprintf("%s is next to pick. Please log into the website at %s to make your selection.",
			p.PlayerName, c.config.WebsiteURL)
		if p.Recipient == "" {
			return body, nil, nil
		}
		return body, []string{p.Recipient}, nil

	default:
		return "", nil, fmt.Errorf("unknown event type %q", env.EventType)
	}
}

// Close gracefully closes the consumer.
func (c *Consumer) Close() error {
	if c.nc != nil {
		c.nc.Close()
	}
	return nil
}
