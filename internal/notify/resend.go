// Package notify delivers transactional email through the Resend REST
// API. Delivery is a courtesy, not a dependency: an unconfigured notifier
// is a silent no-op and auth state never waits on it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Prem324/bookshelf/internal/logger"
	"github.com/Prem324/bookshelf/internal/model"
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	sendTimeout    = 20 * time.Second
)

var _ model.Notifier = (*Resend)(nil)

// Resend is a model.Notifier backed by the Resend HTTP API.
type Resend struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
	logger   *logger.Logger
}

// NewResend creates a notifier. Empty credentials produce a disabled
// notifier whose Send always succeeds without sending.
func NewResend(apiKey, from string, logger *logger.Logger) *Resend {
	return &Resend{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: sendTimeout},
		logger:   logger,
	}
}

func (r *Resend) configured() bool {
	return r.apiKey != "" && r.from != ""
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send delivers one plain-text message.
func (r *Resend) Send(ctx context.Context, to, subject, body string) error {
	if !r.configured() {
		r.logger.Warn("email service not configured, skipping send")
		return nil
	}

	payload, err := json.Marshal(sendRequest{From: r.from, To: []string{to}, Subject: subject, Text: body})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("email service communication error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("email service rejected send: status %d", resp.StatusCode)
	}

	return nil
}
