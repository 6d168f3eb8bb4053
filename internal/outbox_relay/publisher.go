package outbox_relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/platform/messaging/producers"
)

// MessagePublisher delivers one outbox message and marks it processed
type MessagePublisher interface {
	Publish(ctx context.Context, message *outbox.Message) error
}

// EventRelay publishes outbox messages as event envelopes on Kafka
type EventRelay struct {
	outboxRepo outbox.Repository
	events     producers.EventPublisher
	logger     *slog.Logger
}

// NewEventRelay creates a new publisher
func NewEventRelay(outboxRepo outbox.Repository, events producers.EventPublisher, logger *slog.Logger) *EventRelay {
	return &EventRelay{
		outboxRepo: outboxRepo,
		events:     events,
		logger:     logger,
	}
}

// Publish sends the message envelope and marks the message processed. A
// failure to mark after a successful send leaves the message pending, so
// consumers must tolerate the event being delivered twice.
func (p *EventRelay) Publish(ctx context.Context, message *outbox.Message) error {
	logger := p.logger.With(
		"outbox_id", message.ID,
		"event_type", message.EventType,
		"aggregate_id", message.AggregateID,
	)

	if err := p.events.Publish(ctx, message.Envelope()); err != nil {
		return fmt.Errorf("publish outbox message %s: %w", message.ID, err)
	}

	message.MarkAsProcessed()
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, message.Status); err != nil {
		logger.Error("Event published but outbox message not marked as PROCESSED", "error", err)
		return fmt.Errorf("event for %s published, but failed to mark it as PROCESSED: %w", message.ID, err)
	}

	logger.Info("Outbox message published and marked as PROCESSED")
	return nil
}
