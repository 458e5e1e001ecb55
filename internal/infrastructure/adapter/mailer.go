package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kasicash/kasi/internal/domain/port"
)

// Compile-time interface checks.
var (
	_ port.Mailer = (*HTTPMailer)(nil)
	_ port.Mailer = (*LogMailer)(nil)
)

// HTTPMailer delivers transactional email through an HTTP email provider.
type HTTPMailer struct {
	apiKey  string
	baseURL string
	from    string
	client  *http.Client
}

// NewHTTPMailer creates an email provider client sending from the given address.
func NewHTTPMailer(apiKey, baseURL, from string) *HTTPMailer {
	return &HTTPMailer{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		from:    from,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendEmailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Send posts the message to the provider. Failures surface to the caller
// without retry.
func (m *HTTPMailer) Send(ctx context.Context, msg port.MailMessage) error {
	payload, err := json.Marshal(sendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.TextBody,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("email API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// LogMailer is a development mailer that logs instead of sending.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates the logging mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message metadata.
func (m *LogMailer) Send(_ context.Context, msg port.MailMessage) error {
	m.logger.Info("email (not sent, log mailer)",
		"to", msg.To,
		"subject", msg.Subject,
		"body_size", len(msg.TextBody),
	)
	return nil
}
