package arbiter_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deadpool-app/deadpool/clients"
)

// ArbiterClient asks the pool's LLM chatbot a question. The model and its
// prompt chain live behind the endpoint; this is just the HTTP call.
type ArbiterClient struct {
	*clients.BaseClient
}

func NewArbiterClient(baseURL, bearerToken string) *ArbiterClient {
	client := &ArbiterClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader("Authorization", "Bearer "+bearerToken)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	return client
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Text string `json:"text"`
}

// Ask sends the prompt and returns the chatbot's answer. On any failure the
// Arbiter is reported asleep rather than erroring the page.
func (c *ArbiterClient) Ask(ctx context.Context, prompt string) string {
	payload, err := json.Marshal(askRequest{Question: prompt})
	if err != nil {
		return "The Arbiter is sleeping: " + err.Error()
	}

	raw, err := c.Post(ctx, "", bytes.NewReader(payload))
	if err != nil {
		return "The Arbiter is sleeping: " + err.Error()
	}

	var resp askResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Sprintf("The Arbiter is sleeping: %v", err)
	}
	return resp.Text
}
