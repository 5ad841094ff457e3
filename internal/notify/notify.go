// Package notify delivers alert messages to the configured destinations.
//
// Destinations are given as URLs, Apprise style:
//
//	https://discord.com/api/webhooks/<id>/<token>
//	discord://<id>/<token>
//	tgram://<bot token>/<chat id or @channel>
//	json://host/path, jsons://host/path
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNoDestinations is returned when a message is sent with nothing configured.
	ErrNoDestinations = errors.New("no notification destinations configured")
	// ErrUnsupportedScheme is returned for destination URLs no sender understands.
	ErrUnsupportedScheme = errors.New("unsupported notification url")
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dispatcher sends one message body.
type Dispatcher interface {
	Notify(ctx context.Context, body string) error
}

// Multi fans a message out to every destination.
type Multi struct {
	targets []target
}

type target struct {
	name string
	d    Dispatcher
}

// New builds a Multi for the given destination URLs.
func New(urls []string, client HTTPClient) (*Multi, error) {
	m := &Multi{}
	for _, raw := range urls {
		d, name, err := parseURL(raw, client)
		if err != nil {
			return nil, err
		}
		m.targets = append(m.targets, target{name: name, d: d})
	}
	return m, nil
}

// Len returns the number of destinations.
func (m *Multi) Len() int {
	return len(m.targets)
}

// Notify sends body to every destination. All destinations are attempted;
// failures are joined into the returned error.
func (m *Multi) Notify(ctx context.Context, body string) error {
	if len(m.targets) == 0 {
		return ErrNoDestinations
	}
	var errs []error
	for _, t := range m.targets {
		if err := t.d.Notify(ctx, body); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
		}
	}
	return errors.Join(errs...)
}

func parseURL(raw string, client HTTPClient) (Dispatcher, string, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(raw), "://")
	if !ok || rest == "" {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, raw)
	}

	switch strings.ToLower(scheme) {
	case "discord":
		id, token, ok := strings.Cut(strings.Trim(rest, "/"), "/")
		if !ok || id == "" || token == "" {
			return nil, "", fmt.Errorf("%w: discord url needs <id>/<token>", ErrUnsupportedScheme)
		}
		return NewDiscord(discordAPI+id+"/"+token, client), "discord", nil
	case "https", "http":
		if isDiscordWebhook(rest) {
			return NewDiscord(scheme+"://"+rest, client), "discord", nil
		}
	case "tgram":
		token, chat, ok := strings.Cut(strings.Trim(rest, "/"), "/")
		if !ok || token == "" || chat == "" {
			return nil, "", fmt.Errorf("%w: tgram url needs <token>/<chat>", ErrUnsupportedScheme)
		}
		return NewTelegram(token, chat), "telegram", nil
	case "json":
		return NewWebhook("http://"+rest, client), "json", nil
	case "jsons":
		return NewWebhook("https://"+rest, client), "json", nil
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, redact(raw))
}

func isDiscordWebhook(hostPath string) bool {
	return strings.HasPrefix(hostPath, "discord.com/api/webhooks/") ||
		strings.HasPrefix(hostPath, "discordapp.com/api/webhooks/")
}

// redact keeps the scheme and host of a destination out of error messages
// without leaking webhook tokens.
func redact(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "<invalid>"
	}
	host, _, _ := strings.Cut(rest, "/")
	return scheme + "://" + host + "/..."
}
