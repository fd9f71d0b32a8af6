package ports

import (
	"context"
	"time"
)

// WebhookEvent is a single notification posted to the configured webhook.
type WebhookEvent struct {
	Event      string            `json:"event"` // e.g. contact.created
	Data       map[string]string `json:"data"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// WebhookEmitter sends events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event WebhookEvent) error
}
