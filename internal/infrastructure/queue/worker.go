package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/retention"
)

// WorkerDeps are the collaborators task handlers need.
type WorkerDeps struct {
	Mailer  ports.Mailer
	Emitter ports.WebhookEmitter
	Users   ports.UserRepository
	// UnconfirmedDays enables the daily purge of unconfirmed accounts when > 0.
	UnconfirmedDays int
}

// Worker runs Asynq task handlers and the daily retention schedule.
type Worker struct {
	srv       *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	deps      WorkerDeps
	log       zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisConnOpt, deps WorkerDeps, log zerolog.Logger) (*Worker, error) {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
		Logger:      asynqLogger{log: log.With().Str("component", "asynq").Logger()},
	})
	w := &Worker{srv: srv, mux: asynq.NewServeMux(), deps: deps, log: log}
	w.mux.HandleFunc(TypeSendEmail, w.handleSendEmail)
	w.mux.HandleFunc(TypeWebhook, w.handleWebhook)
	w.mux.HandleFunc(TypePurgeUnconfirmed, w.handlePurgeUnconfirmed)

	if deps.UnconfirmedDays > 0 {
		w.scheduler = asynq.NewScheduler(redisOpt, nil)
		if _, err := w.scheduler.Register("@daily", asynq.NewTask(TypePurgeUnconfirmed, nil)); err != nil {
			return nil, fmt.Errorf("register retention schedule: %w", err)
		}
	}
	return w, nil
}

func (w *Worker) handleSendEmail(ctx context.Context, t *asynq.Task) error {
	var email ports.OutboundEmail
	if err := json.Unmarshal(t.Payload(), &email); err != nil {
		w.log.Error().Err(err).Msg("email task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err := w.deps.Mailer.Send(ctx, email); err != nil {
		w.log.Warn().Err(err).Str("to", email.To).Msg("send email failed; will retry")
		return err
	}
	return nil
}

func (w *Worker) handleWebhook(ctx context.Context, t *asynq.Task) error {
	var event ports.WebhookEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		w.log.Error().Err(err).Msg("webhook task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return w.deps.Emitter.Emit(ctx, event)
}

func (w *Worker) handlePurgeUnconfirmed(ctx context.Context, t *asynq.Task) error {
	n, err := retention.RunPurgeUnconfirmedUsers(ctx, w.deps.Users, w.deps.UnconfirmedDays)
	if err != nil {
		w.log.Error().Err(err).Int("purged", n).Msg("purge unconfirmed users failed")
		return err
	}
	w.log.Info().Int("purged", n).Msg("purged unconfirmed users")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
	}
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.srv.Shutdown()
}

// asynqLogger routes asynq's internal logs through zerolog.
type asynqLogger struct {
	log zerolog.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error().Msg(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Fatal().Msg(fmt.Sprint(args...)) }
