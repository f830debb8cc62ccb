package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client sends messages through the WhatsApp Graph API.
type Client struct {
	token         string
	phoneNumberID string
	baseURL       string
	client        *http.Client
}

// NewClient creates a Graph API client for the configured business number.
func NewClient(token, phoneNumberID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://graph.facebook.com/v18.0"
	}
	return &Client{
		token:         token,
		phoneNumberID: phoneNumberID,
		baseURL:       baseURL,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

// SendText delivers a text message to the given phone number. Delivery
// failures are returned to the caller; no retries are attempted here.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	req := sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             TypeText,
		Text:             sendText{Body: body},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp returned status %d", resp.StatusCode)
	}
	return nil
}
