package sms_client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/deadpool-app/deadpool/clients"
)

// SMSClient sends text messages through the Twilio REST API.
type SMSClient struct {
	*clients.BaseClient
	accountSID string
	from       string
}

func NewSMSClient(accountSID, authToken, from string) *SMSClient {
	client := &SMSClient{
		BaseClient: clients.NewBaseClient(BaseURL),
		accountSID: accountSID,
		from:       from,
	}

	auth := base64.StdEncoding.EncodeToString([]byte(accountSID + ":" + authToken))
	client.SetHeader("Authorization", "Basic "+auth)

	return client
}

type messageResponse struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message"`
}

// SendSMS delivers body to every recipient and returns the last accepted
// message SID. Delivery is best-effort per number; the first provider
// error aborts the remaining sends.
func (c *SMSClient) SendSMS(ctx context.Context, body string, recipients []string) (string, error) {
	endpoint := fmt.Sprintf(MessagesEndpointFmt, c.accountSID)

	var lastSID string
	for _, to := range recipients {
		form := url.Values{}
		form.Set("From", c.from)
		form.Set("To", to)
		form.Set("Body", body)

		raw, err := c.PostForm(ctx, endpoint, form)
		if err != nil {
			return "", fmt.Errorf("failed to send SMS to %s: %w", to, err)
		}

		var resp messageResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", fmt.Errorf("failed to unmarshal SMS response: %w", err)
		}
		if resp.ErrorMessage != nil {
			return "", fmt.Errorf("SMS provider error for %s: %s", to, *resp.ErrorMessage)
		}
		lastSID = resp.SID
	}

	return lastSID, nil
}
