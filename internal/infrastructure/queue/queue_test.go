package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

type recordingMailer struct {
	sent []ports.OutboundEmail
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, email ports.OutboundEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

type recordingEmitter struct {
	events []ports.WebhookEvent
}

func (e *recordingEmitter) Emit(ctx context.Context, event ports.WebhookEvent) error {
	e.events = append(e.events, event)
	return nil
}

func TestDirectEnqueuerRunsInline(t *testing.T) {
	mailer := &recordingMailer{}
	emitter := &recordingEmitter{}
	q := NewDirectEnqueuer(mailer, emitter, zerolog.Nop())
	ctx := context.Background()

	if err := q.EnqueueSendEmail(ctx, ports.OutboundEmail{To: "a@example.com", Subject: "hi"}); err != nil {
		t.Fatal(err)
	}
	if err := q.EnqueueWebhook(ctx, ports.WebhookEvent{Event: "user.registered"}); err != nil {
		t.Fatal(err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To != "a@example.com" {
		t.Errorf("unexpected mail %+v", mailer.sent)
	}
	if len(emitter.events) != 1 || emitter.events[0].Event != "user.registered" {
		t.Errorf("unexpected events %+v", emitter.events)
	}

	mailer.err = errors.New("smtp down")
	if err := q.EnqueueSendEmail(ctx, ports.OutboundEmail{To: "b@example.com"}); err == nil {
		t.Error("mailer error should propagate")
	}
}

func TestWorkerHandleSendEmail(t *testing.T) {
	mailer := &recordingMailer{}
	w := &Worker{deps: WorkerDeps{Mailer: mailer}, log: zerolog.Nop()}
	payload, _ := json.Marshal(ports.OutboundEmail{To: "a@example.com", Subject: "Confirm", Body: "link"})

	if err := w.handleSendEmail(context.Background(), asynq.NewTask(TypeSendEmail, payload)); err != nil {
		t.Fatal(err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].Subject != "Confirm" {
		t.Errorf("unexpected mail %+v", mailer.sent)
	}

	err := w.handleSendEmail(context.Background(), asynq.NewTask(TypeSendEmail, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("bad payload should skip retry, got %v", err)
	}
}

func TestWorkerHandleWebhook(t *testing.T) {
	emitter := &recordingEmitter{}
	w := &Worker{deps: WorkerDeps{Emitter: emitter}, log: zerolog.Nop()}
	payload, _ := json.Marshal(ports.WebhookEvent{Event: "contact.created", Data: map[string]string{"name": "Ann"}})

	if err := w.handleWebhook(context.Background(), asynq.NewTask(TypeWebhook, payload)); err != nil {
		t.Fatal(err)
	}
	if len(emitter.events) != 1 || emitter.events[0].Data["name"] != "Ann" {
		t.Errorf("unexpected events %+v", emitter.events)
	}
}

func TestWorkerHandlePurgeUnconfirmed(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	old := time.Now().Add(-72 * time.Hour)
	u := &domain.User{
		ID:        domain.NewUserID(uuid.New()),
		Username:  "pending",
		Email:     "pending@example.com",
		CreatedAt: old,
		UpdatedAt: old,
	}
	if err := store.Users().Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	w := &Worker{deps: WorkerDeps{Users: store.Users(), UnconfirmedDays: 1}, log: zerolog.Nop()}
	if err := w.handlePurgeUnconfirmed(ctx, asynq.NewTask(TypePurgeUnconfirmed, nil)); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Users().GetByID(ctx, u.ID); got != nil {
		t.Error("unconfirmed user should be purged")
	}
}
