package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/backoffice-ledger/internal/config"
	"github.com/backoffice-ledger/internal/domain/outbox"
)

// EventTypeHeader carries the event type so consumers can route without
// decoding the value.
const EventTypeHeader = "event-type"

// EventPublisher publishes outbox envelopes to the events topic.
type EventPublisher interface {
	Publish(ctx context.Context, event outbox.Envelope) error
	Close() error
}

// EventProducer is the Kafka-backed EventPublisher.
type EventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewEventProducer ensures the events topic exists and returns a synchronous
// producer for it.
func NewEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*EventProducer, error) {
	if cfg.EventsTopic == "" {
		return nil, fmt.Errorf("kafka events topic is not configured")
	}

	writer, err := newTopicWriter(ctx, logger, cfg, cfg.EventsTopic, &kafka.Hash{})
	if err != nil {
		return nil, fmt.Errorf("event producer: %w", err)
	}

	return &EventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.EventsTopic,
	}, nil
}

// Publish writes the event keyed by its aggregate, so events of one journal
// or order stay ordered on a single partition.
func (p *EventProducer) Publish(ctx context.Context, event outbox.Envelope) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: value,
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(event.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"topic", p.topic,
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err,
		)
		return fmt.Errorf("failed to publish event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published event",
		"topic", p.topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

func (p *EventProducer) Close() error {
	p.logger.Info("Closing Kafka event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
