package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// EventContactCreated is emitted to the webhook after a message is stored.
const EventContactCreated = "contact.created"

type SubmitInput struct {
	Name    string
	Email   string
	Message string
}

type SubmitResult struct {
	Contact *domain.Contact
}

// Submit stores an inbound contact message and notifies the webhook.
type Submit struct {
	contacts ports.ContactRepository
	enqueuer ports.TaskEnqueuer
}

func NewSubmit(contacts ports.ContactRepository, enqueuer ports.TaskEnqueuer) *Submit {
	return &Submit{contacts: contacts, enqueuer: enqueuer}
}

func (uc *Submit) Execute(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	c := &domain.Contact{
		ID:        domain.NewContactID(uuid.New()),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: time.Now(),
	}
	switch {
	case c.Name == "":
		return nil, fmt.Errorf("%w: name", domerrors.ErrMissingField)
	case c.Email == "":
		return nil, fmt.Errorf("%w: email", domerrors.ErrMissingField)
	case c.Message == "":
		return nil, fmt.Errorf("%w: message", domerrors.ErrMissingField)
	}
	if err := uc.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	// The message is stored; a failed notification only loses the webhook.
	_ = uc.enqueuer.EnqueueWebhook(ctx, ports.WebhookEvent{
		Event: EventContactCreated,
		Data: map[string]string{
			"id":    c.ID.String(),
			"name":  c.Name,
			"email": c.Email,
		},
		OccurredAt: c.CreatedAt,
	})
	return &SubmitResult{Contact: c}, nil
}
