package queue

import (
	"context"
	"encoding/json"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const (
	TypeSendEmail        = "email:send"
	TypeWebhook          = "webhook:emit"
	TypePurgeUnconfirmed = "retention:purge_unconfirmed"
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisConnOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueSendEmail(ctx context.Context, email ports.OutboundEmail) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSendEmail, payload, asynq.MaxRetry(5))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("to", email.To).Str("subject", email.Subject).Msg("enqueue email failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueWebhook(ctx context.Context, event ports.WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeWebhook, payload, asynq.MaxRetry(3))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("enqueue webhook failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
