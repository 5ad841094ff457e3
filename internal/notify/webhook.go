package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const discordAPI = "https://discord.com/api/webhooks/"

// Message length limits of the destinations.
const (
	DiscordLimit  = 2000
	TelegramLimit = 4096
)

// Discord posts messages to a Discord webhook.
type Discord struct {
	url    string
	client HTTPClient
}

// NewDiscord creates a Discord sender for the given webhook URL.
func NewDiscord(webhookURL string, client HTTPClient) *Discord {
	return &Discord{url: webhookURL, client: client}
}

// Notify posts body, split into webhook-sized parts when needed.
func (d *Discord) Notify(ctx context.Context, body string) error {
	for _, part := range SplitMessage(body, DiscordLimit) {
		if err := postJSON(ctx, d.client, d.url, map[string]string{"content": part}); err != nil {
			return err
		}
	}
	return nil
}

// Webhook posts {"body": ...} to an arbitrary JSON endpoint.
type Webhook struct {
	url    string
	client HTTPClient
}

// NewWebhook creates a generic JSON webhook sender.
func NewWebhook(url string, client HTTPClient) *Webhook {
	return &Webhook{url: url, client: client}
}

// Notify posts body in a single request.
func (w *Webhook) Notify(ctx context.Context, body string) error {
	return postJSON(ctx, w.client, w.url, map[string]string{"body": body})
}

func postJSON(ctx context.Context, client HTTPClient, url string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
