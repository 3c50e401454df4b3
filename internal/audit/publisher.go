package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"axisd/internal/platform/metrics"
	"axisd/pkg/requestcontext"
)

// Publisher hands events to the background worker over a bounded buffer.
// Emit never blocks the request path: when the buffer is full the event is
// dropped and counted.
type Publisher struct {
	inbox   chan Event
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewPublisher(bufferSize int, logger *slog.Logger, m *metrics.Metrics) *Publisher {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Publisher{
		inbox:   make(chan Event, bufferSize),
		logger:  logger,
		metrics: m,
	}
}

// Emit enqueues an audit event, stamping ID, time, and request ID from the
// context. Drops are logged and counted, never surfaced to the caller.
func (p *Publisher) Emit(ctx context.Context, action, subject string, success bool, detail map[string]string) {
	event := Event{
		ID:        uuid.NewString(),
		Timestamp: requestcontext.Now(ctx).UTC(),
		Action:    action,
		Subject:   subject,
		Success:   success,
		RequestID: requestcontext.RequestID(ctx),
		Detail:    detail,
	}

	select {
	case p.inbox <- event:
	default:
		p.metrics.ObserveAuditDrop()
		p.logger.WarnContext(ctx, "audit event dropped, buffer full",
			"action", action,
			"subject", subject,
		)
	}
}

// Inbox exposes the event stream for the worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }
