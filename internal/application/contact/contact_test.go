package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

func TestSubmitListReply(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	enq := &portstest.Enqueuer{}
	submit := NewSubmit(store.Contacts(), enq)

	if _, err := submit.Execute(ctx, SubmitInput{Name: "A", Email: "a@example.com"}); !errors.Is(err, domerrors.ErrMissingField) {
		t.Errorf("missing message: got %v", err)
	}
	first, err := submit.Execute(ctx, SubmitInput{Name: "A", Email: "a@example.com", Message: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := submit.Execute(ctx, SubmitInput{Name: "B", Email: "b@example.com", Message: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if len(enq.Webhooks) != 2 || enq.Webhooks[0].Event != EventContactCreated || enq.Webhooks[0].Data["email"] != "a@example.com" {
		t.Errorf("unexpected webhooks %+v", enq.Webhooks)
	}

	list, err := NewList(store.Contacts()).Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != second.Contact.ID {
		t.Errorf("list should be newest first: %+v", list)
	}

	reply := NewReply(store.Contacts(), enq)
	if err := reply.Execute(ctx, ReplyInput{ContactID: first.Contact.ID, Message: "thanks"}); err != nil {
		t.Fatal(err)
	}
	mail := enq.LastEmail()
	if mail.To != "a@example.com" || mail.Subject != ReplySubject || mail.Body != "thanks" {
		t.Errorf("unexpected reply %+v", mail)
	}
	err = reply.Execute(ctx, ReplyInput{ContactID: domain.NewContactID(uuid.New()), Message: "x"})
	if !errors.Is(err, domerrors.ErrContactNotFound) {
		t.Errorf("unknown contact: got %v", err)
	}
}
