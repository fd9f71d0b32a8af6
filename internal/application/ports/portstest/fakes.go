package portstest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

// PlainHasher stores passwords with a fixed prefix. Tests only.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }

func (PlainHasher) Verify(password, hash string) bool { return hash == "plain:"+password }

// Signer issues "purpose|subject" tokens. Expired tokens are those issued with ttl <= 0.
type Signer struct{}

func (Signer) Issue(purpose, subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "expired|" + purpose + "|" + subject, nil
	}
	return purpose + "|" + subject, nil
}

func (Signer) Validate(purpose, token string) (string, error) {
	p, subject, ok := strings.Cut(token, "|")
	if !ok || p != purpose {
		return "", errors.New("invalid token")
	}
	return subject, nil
}

// Enqueuer records enqueued tasks.
type Enqueuer struct {
	mu       sync.Mutex
	Emails   []ports.OutboundEmail
	Webhooks []ports.WebhookEvent
	emailErr error
}

// FailEmails makes EnqueueSendEmail return err until called again with nil.
func (e *Enqueuer) FailEmails(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.emailErr = err
}

func (e *Enqueuer) EnqueueSendEmail(ctx context.Context, email ports.OutboundEmail) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.emailErr != nil {
		return e.emailErr
	}
	e.Emails = append(e.Emails, email)
	return nil
}

func (e *Enqueuer) EnqueueWebhook(ctx context.Context, event ports.WebhookEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Webhooks = append(e.Webhooks, event)
	return nil
}

// LastEmail returns the most recent email, or the zero value.
func (e *Enqueuer) LastEmail() ports.OutboundEmail {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Emails) == 0 {
		return ports.OutboundEmail{}
	}
	return e.Emails[len(e.Emails)-1]
}

var (
	_ ports.PasswordHasher    = PlainHasher{}
	_ ports.ActionTokenSigner = Signer{}
	_ ports.TaskEnqueuer      = (*Enqueuer)(nil)
)
