package queue

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/rs/zerolog"
)

// DirectEnqueuer runs tasks inline when Redis is not configured.
type DirectEnqueuer struct {
	mailer  ports.Mailer
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

func NewDirectEnqueuer(mailer ports.Mailer, emitter ports.WebhookEmitter, log zerolog.Logger) *DirectEnqueuer {
	return &DirectEnqueuer{mailer: mailer, emitter: emitter, log: log}
}

func (q *DirectEnqueuer) EnqueueSendEmail(ctx context.Context, email ports.OutboundEmail) error {
	if err := q.mailer.Send(ctx, email); err != nil {
		q.log.Error().Err(err).Str("to", email.To).Str("subject", email.Subject).Msg("send email failed")
		return err
	}
	return nil
}

func (q *DirectEnqueuer) EnqueueWebhook(ctx context.Context, event ports.WebhookEvent) error {
	if err := q.emitter.Emit(ctx, event); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("webhook emit failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*DirectEnqueuer)(nil)
