package ports

import "context"

// OutboundEmail is a plain-text message.
type OutboundEmail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TaskEnqueuer enqueues async tasks (email, webhook).
type TaskEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, email OutboundEmail) error
	EnqueueWebhook(ctx context.Context, event WebhookEvent) error
}

// Mailer delivers an email immediately.
type Mailer interface {
	Send(ctx context.Context, email OutboundEmail) error
}
