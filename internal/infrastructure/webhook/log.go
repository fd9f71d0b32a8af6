package webhook

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

// LogEmitter records events in the log instead of delivering them. Used when WEBHOOK_URL is unset.
type LogEmitter struct {
	log zerolog.Logger
}

func NewLogEmitter(log zerolog.Logger) *LogEmitter {
	return &LogEmitter{log: log}
}

func (e *LogEmitter) Emit(ctx context.Context, event ports.WebhookEvent) error {
	e.log.Debug().Str("event", event.Event).Fields(map[string]any{"data": event.Data}).Msg("webhook not configured; event dropped")
	return nil
}

var _ ports.WebhookEmitter = (*LogEmitter)(nil)
