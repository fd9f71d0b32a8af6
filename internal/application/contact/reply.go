package contact

import (
	"context"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// ReplySubject is the subject line of every admin reply.
const ReplySubject = "Re: Your inquiry"

type ReplyInput struct {
	ContactID domain.ContactID
	Message   string
}

// Reply emails an admin's answer to the sender of a contact message.
type Reply struct {
	contacts ports.ContactRepository
	enqueuer ports.TaskEnqueuer
}

func NewReply(contacts ports.ContactRepository, enqueuer ports.TaskEnqueuer) *Reply {
	return &Reply{contacts: contacts, enqueuer: enqueuer}
}

func (uc *Reply) Execute(ctx context.Context, input ReplyInput) error {
	if strings.TrimSpace(input.Message) == "" {
		return domerrors.ErrMissingField
	}
	c, err := uc.contacts.GetByID(ctx, input.ContactID)
	if err != nil {
		return err
	}
	if c == nil {
		return domerrors.ErrContactNotFound
	}
	return uc.enqueuer.EnqueueSendEmail(ctx, ports.OutboundEmail{
		To:      c.Email,
		Subject: ReplySubject,
		Body:    input.Message,
	})
}

// Get returns one contact message.
type Get struct {
	contacts ports.ContactRepository
}

func NewGet(contacts ports.ContactRepository) *Get {
	return &Get{contacts: contacts}
}

func (uc *Get) Execute(ctx context.Context, id domain.ContactID) (*domain.Contact, error) {
	c, err := uc.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domerrors.ErrContactNotFound
	}
	return c, nil
}

// List returns all contact messages, newest first.
type List struct {
	contacts ports.ContactRepository
}

func NewList(contacts ports.ContactRepository) *List {
	return &List{contacts: contacts}
}

func (uc *List) Execute(ctx context.Context) ([]*domain.Contact, error) {
	return uc.contacts.List(ctx)
}
