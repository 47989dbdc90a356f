// Package mailer delivers capsule emails through the Resend HTTP API.
// Delivery is fire-and-forget: callers log failures and move on, a failed
// send never rolls anything back.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer sends one rendered email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Resend posts emails to the Resend REST API. An empty API key disables
// sending: Send logs the skip and reports success.
type Resend struct {
	apiKey string
	from   string
	client *http.Client
}

// NewResend returns a Resend mailer. from is the RFC 5322 sender, e.g.
// `TimeCapsule <noreply@timecapsule.app>`.
func NewResend(apiKey, from string) *Resend {
	return &Resend{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *Resend) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.apiKey == "" {
		log.Printf("mailer: not configured, skipping email %q to %s", subject, to)
		return nil
	}

	payload, err := json.Marshal(map[string]any{
		"from":    m.from,
		"to":      to,
		"subject": subject,
		"html":    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, body)
	}
	return nil
}
