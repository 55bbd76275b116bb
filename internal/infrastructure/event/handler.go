package event

import (
	"context"

	"github.com/protrack/backend/internal/domain/shared"
	"github.com/protrack/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HandlerFunc adapts a function into an EventHandler
type HandlerFunc struct {
	types []string
	fn    func(ctx context.Context, evt shared.DomainEvent) error
}

// NewHandlerFunc wraps fn as a handler for eventTypes
func NewHandlerFunc(fn func(ctx context.Context, evt shared.DomainEvent) error, eventTypes ...string) *HandlerFunc {
	return &HandlerFunc{types: eventTypes, fn: fn}
}

// Handle implements shared.EventHandler
func (h *HandlerFunc) Handle(ctx context.Context, evt shared.DomainEvent) error {
	return h.fn(ctx, evt)
}

// EventTypes implements shared.EventHandler
func (h *HandlerFunc) EventTypes() []string {
	return h.types
}

// AuditHandler writes every event to the log. Events whose type is listed
// as a warning are logged at warn level.
type AuditHandler struct {
	logger *zap.Logger
	warn   map[string]bool
}

// NewAuditHandler creates a wildcard audit handler
func NewAuditHandler(l *zap.Logger, warnTypes ...string) *AuditHandler {
	warn := make(map[string]bool, len(warnTypes))
	for _, t := range warnTypes {
		warn[t] = true
	}
	return &AuditHandler{logger: l.Named("audit"), warn: warn}
}

// Handle implements shared.EventHandler
func (h *AuditHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	log := logger.Enrich(ctx, h.logger)
	fields := []zap.Field{
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID()),
		zap.Time("occurred_at", evt.OccurredAt()),
	}
	if h.warn[evt.EventType()] {
		log.Warn("domain event", fields...)
	} else {
		log.Info("domain event", fields...)
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (h *AuditHandler) EventTypes() []string {
	return nil
}
