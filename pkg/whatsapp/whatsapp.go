package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ConfigSource supplies the current WhatsApp delivery configuration. Reading
// it per send means settings changes apply without reconstructing the client.
type ConfigSource interface {
	WhatsAppConfig(ctx context.Context) (Config, error)
}

// Config holds WhatsApp provider configuration
type Config struct {
	Service string // "wasend" or "custom"
	APIKey  string
	APIURL  string
}

// Client sends text messages through a WhatsApp HTTP gateway.
type Client struct {
	source ConfigSource
	http   *http.Client
}

// NewClient creates a new WhatsApp client
func NewClient(source ConfigSource) *Client {
	return &Client{
		source: source,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SendText delivers a text message to the given number via the configured
// provider.
func (c *Client) SendText(ctx context.Context, number, text string) error {
	cfg, err := c.source.WhatsAppConfig(ctx)
	if err != nil {
		return err
	}

	switch strings.ToLower(cfg.Service) {
	case "wasend", "":
		return c.sendWasend(ctx, cfg, number, text)
	case "custom":
		return c.sendCustom(ctx, cfg, number, text)
	default:
		return fmt.Errorf("whatsapp: unknown API service %q", cfg.Service)
	}
}

func (c *Client) sendWasend(ctx context.Context, cfg Config, number, text string) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("whatsapp: API key is not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":   normalizeNumber(number),
		"text": text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://wasend.dev/api/v1/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	return c.do(req)
}

// sendCustom posts to a user-supplied gateway URL. The URL may contain the
// placeholders {number} and {message}.
func (c *Client) sendCustom(ctx context.Context, cfg Config, number, text string) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("whatsapp: API URL is not configured")
	}

	endpoint := strings.NewReplacer(
		"{number}", url.QueryEscape(normalizeNumber(number)),
		"{message}", url.QueryEscape(text),
	).Replace(cfg.APIURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp: gateway returned %s", resp.Status)
	}
	return nil
}

// ShareLink builds a wa.me link that opens a chat with the message prefilled.
// Used as the manual fallback when no gateway is configured.
func ShareLink(number, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalizeNumber(number), url.QueryEscape(text))
}

// normalizeNumber strips everything but digits so "+91 98765-43210" and
// "919876543210" address the same chat.
func normalizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
