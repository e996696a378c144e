package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/deadpool-app/deadpool/clients/sms_client"
	"github.com/deadpool-app/deadpool/internal/dbconfig"
	"github.com/deadpool-app/deadpool/internal/draft/outbox"
	"github.com/deadpool-app/deadpool/internal/notify"
)

func main() {
	// load .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// configure zerolog console output and level
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := loadConfig(getEnv("NOTIFY_CONFIG", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("load notifier config")
	}
	if url := os.Getenv("NATS_URL"); url != "" {
		cfg.NATSUrl = url
	}

	// DB connection for the outbox drain
	dbCfg := dbconfig.NewConfigFromEnv()
	db, err := sql.Open("pgx", dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().
		Str("host", dbCfg.Host).
		Str("database", dbCfg.Database).
		Msg("connected to database")

	// JetStream publisher for the drain worker
	jsCfg := outbox.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NATSUrl
	publisher, err := outbox.NewJetStreamPublisher(jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create JetStream publisher")
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := outbox.NewWorker(outbox.NewRepository(db), publisher, outbox.DefaultConfig(), clockwork.NewRealClock())
	if err := worker.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("start outbox worker")
	}
	defer func() {
		if err := worker.Stop(); err != nil {
			log.Error().Err(err).Msg("stop outbox worker")
		}
	}()

	// SMS consumer
	sender := sms_client.NewSMSClient(
		mustEnv("TWILIO_ACCOUNT_SID"),
		mustEnv("TWILIO_AUTH_TOKEN"),
		getEnv("TWILIO_FROM", "+18449891781"),
	)
	consumer, err := notify.NewConsumer(cfg, sender)
	if err != nil {
		log.Fatal().Err(err).Msg("create notifier consumer")
	}
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("start notifier consumer")
	}

	<-ctx.Done()
	log.Info().Msg("shutting down notifier")
}

func loadConfig(path string) (notify.Config, error) {
	cfg := notify.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Str("key", key).Msg("required environment variable is not set")
	}
	return value
}
