package service

import (
	"context"
	"log/slog"

	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// eventRecorder writes domain events to the outbox after the change they
// describe has been persisted. A failed write is logged and never undoes the
// change.
type eventRecorder struct {
	repo   outbox.Repository
	logger *slog.Logger
}

func (r eventRecorder) record(ctx context.Context, eventType shared.EventType, aggregateID string, body any) {
	if r.repo == nil {
		return
	}

	msg, err := outbox.NewMessage(eventType, aggregateID, body)
	if err != nil {
		r.logger.Error("Failed to encode outbox event", "event_type", eventType, "aggregate_id", aggregateID, "error", err)
		return
	}
	if err := r.repo.Create(ctx, msg); err != nil {
		r.logger.Error("Failed to record outbox event", "event_type", eventType, "aggregate_id", aggregateID, "error", err)
		return
	}
	r.logger.Debug("Recorded outbox event", "event_type", eventType, "aggregate_id", aggregateID, "message_id", msg.ID)
}
