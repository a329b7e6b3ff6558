package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dailybrief/internal/logger"
	"dailybrief/internal/metrics"
	"dailybrief/internal/retry"
)

const sendGridSendURL = "https://api.sendgrid.com/v3/mail/send"

// Mailer delivers rendered HTML through the SendGrid v3 API.
type Mailer struct {
	APIKey string
	From   string
	To     string

	// BaseURL overrides the API endpoint in tests.
	BaseURL string
	client  *http.Client
}

func NewMailer(apiKey, from, to string) *Mailer {
	return &Mailer{
		APIKey:  apiKey,
		From:    from,
		To:      to,
		BaseURL: sendGridSendURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts the email, retrying transient failures with backoff.
func (m *Mailer) Send(ctx context.Context, subject, html string) error {
	if m.APIKey == "" {
		return fmt.Errorf("no SendGrid API key configured")
	}
	if m.To == "" || m.From == "" {
		return fmt.Errorf("email addresses not configured")
	}

	err := retry.Do(ctx, retry.Config{Attempts: 3, Delay: 2 * time.Second, Backoff: true}, func() error {
		return m.sendOnce(ctx, subject, html)
	})
	if err != nil {
		return err
	}

	metrics.Global.IncrementEmailsSent()
	logger.Info("email sent", "to", m.To, "subject", subject)
	return nil
}

func (m *Mailer) sendOnce(ctx context.Context, subject, html string) error {
	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": m.To}}},
		},
		"from":    map[string]string{"email": m.From},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/html", "value": html},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		return fmt.Errorf("sendgrid API error: status %d", resp.StatusCode)
	}
}
