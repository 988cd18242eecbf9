// Package sms implements the outbound SMS gateway client.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pharmaflow/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of a failed gateway response lands in the
	// returned error.
	maxErrorBody = 512
)

// Config carries the gateway connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

// GatewayClient sends text messages through an HTTP SMS gateway. It
// implements ports.SMSSender.
type GatewayClient struct {
	baseURL string
	apiKey  string
	sender  string
	client  *http.Client
}

type sendRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// NewGatewayClient creates a gateway client from the given config.
func NewGatewayClient(config Config) (*GatewayClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("sms gateway base URL is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("sms gateway API key is required")
	}
	if config.Sender == "" {
		return nil, fmt.Errorf("sms sender name is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &GatewayClient{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		sender:  config.Sender,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Send posts one message to the gateway. Any non-2xx response is an error.
func (c *GatewayClient) Send(ctx context.Context, message ports.SMSMessage) error {
	body, err := json.Marshal(sendRequest{
		Sender:    c.sender,
		Recipient: message.To,
		Message:   message.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return fmt.Errorf("sms gateway returned %d: %s", response.StatusCode, detail)
	}

	return nil
}
