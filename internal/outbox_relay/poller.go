package outbox_relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/backoffice-ledger/internal/config"
	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/platform/messaging/producers"
)

// Dispatcher runs a batch of messages through fn
type Dispatcher interface {
	Dispatch(ctx context.Context, messages []*outbox.Message, fn func(context.Context, *outbox.Message) error)
}

// Poller moves pending outbox messages to Kafka
type Poller struct {
	outboxRepo       outbox.Repository
	publisher        MessagePublisher
	dlq              producers.DeadLetterPublisher
	workers          Dispatcher
	logger           *slog.Logger
	pollInterval     time.Duration
	batchSize        int
	maxRetryAttempts int
}

func NewPoller(
	cfg *config.OutboxConfig,
	outboxRepo outbox.Repository,
	publisher MessagePublisher,
	dlq producers.DeadLetterPublisher,
	workers Dispatcher,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		outboxRepo:       outboxRepo,
		publisher:        publisher,
		dlq:              dlq,
		workers:          workers,
		logger:           logger,
		pollInterval:     cfg.PollingInterval,
		batchSize:        cfg.BatchSize,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

// Start polls until ctx is canceled. The first batch runs immediately.
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting Outbox Poller",
		"poll_interval", p.pollInterval.String(),
		"batch_size", p.batchSize,
		"max_retry_attempts", p.maxRetryAttempts,
	)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		if err := p.processPendingMessages(ctx); err != nil {
			p.logger.Error("Error during batch processing of pending outbox messages", "error", err)
		}

		select {
		case <-ctx.Done():
			p.logger.Info("Outbox Poller stopping due to context cancellation.")
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) processPendingMessages(ctx context.Context) error {
	messages, err := p.outboxRepo.GetPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending outbox messages: %w", err)
	}

	if len(messages) == 0 {
		p.logger.Debug("No pending outbox messages found.")
		return nil
	}

	p.logger.Info("Fetched pending outbox messages", "count", len(messages))
	p.workers.Dispatch(ctx, messages, p.relay)
	return nil
}

// relay publishes one message. On failure the attempt is counted, and once
// the retry budget is spent the message is marked failed and parked on the
// DLQ.
func (p *Poller) relay(ctx context.Context, msg *outbox.Message) error {
	err := p.publisher.Publish(ctx, msg)
	if err == nil {
		return nil
	}

	logger := p.logger.With("outbox_id", msg.ID, "event_type", msg.EventType)
	logger.Error("Failed to publish outbox message", "current_attempts", msg.Attempts, "error", err)

	if errInc := p.outboxRepo.IncrementAttempts(ctx, msg.ID); errInc != nil {
		logger.Error("Failed to increment attempts for outbox message", "error", errInc)
		return err
	}

	msg.IncrementAttempts()
	if msg.Attempts < p.maxRetryAttempts {
		return err
	}

	logger.Warn("Max retry attempts reached for outbox message, marking as FAILED_TO_PUBLISH",
		"attempts_made", msg.Attempts,
	)
	msg.MarkAsFailed()
	if errUpdate := p.outboxRepo.UpdateStatus(ctx, msg.ID, msg.Status); errUpdate != nil {
		logger.Error("Failed to update outbox status to FAILED_TO_PUBLISH after max retries", "error", errUpdate)
		return err
	}

	value, errMarshal := json.Marshal(msg.Envelope())
	if errMarshal != nil {
		logger.Error("Failed to encode outbox message for DLQ", "error", errMarshal)
		return err
	}
	reason := fmt.Sprintf("publish failed after %d attempts: %v", msg.Attempts, err)
	if errDLQ := p.dlq.PublishToDLQ(ctx, msg.AggregateID, value, reason); errDLQ != nil {
		logger.Error("Failed to forward outbox message to DLQ", "error", errDLQ)
	}

	// the failed message no longer blocks its aggregate
	return nil
}
