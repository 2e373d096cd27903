package services

import (
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	EventConsentGiven     = "consent.given"
	EventConsentWithdrawn = "consent.withdrawn"
)

// ConsentEvent is the payload posted to the configured webhook endpoint.
type ConsentEvent struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	SubjectID  string    `json:"subject_id"`
	Domain     string    `json:"domain"`
	ConsentID  uint      `json:"consent_id"`
	Purposes   []string  `json:"purposes,omitempty"`
}

// WebhookNotifier posts consent events to a downstream endpoint. Delivery is
// fire-and-forget: failures are logged and dropped, never surfaced to the
// request that produced the event.
type WebhookNotifier struct {
	url    string
	client *resty.Client
	logger *zap.Logger
}

// NewWebhookNotifier returns nil when url is empty; a nil notifier is a
// no-op.
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	if url == "" {
		return nil
	}
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &WebhookNotifier{url: url, client: client, logger: logger}
}

// Notify delivers the event on a separate goroutine.
func (n *WebhookNotifier) Notify(event ConsentEvent) {
	if n == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	go func() {
		resp, err := n.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post(n.url)
		if err != nil {
			n.logger.Warn("webhook delivery failed",
				zap.String("event", event.Type),
				zap.Uint("consent_id", event.ConsentID),
				zap.Error(err))
			return
		}
		if resp.IsError() {
			n.logger.Warn("webhook endpoint returned error",
				zap.String("event", event.Type),
				zap.Int("status", resp.StatusCode()))
		}
	}()
}
