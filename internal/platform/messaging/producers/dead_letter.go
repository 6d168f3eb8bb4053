package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/backoffice-ledger/internal/config"
)

// DeadLetterPublisher parks events the relay gave up on.
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// DLQHeaderReason carries the failure reason next to the wrapped value.
const DLQHeaderReason = "dlq-reason"

// DLQProducer is the Kafka-backed DeadLetterPublisher.
type DLQProducer struct {
	logger   *slog.Logger
	writer   KafkaWriter
	dlqTopic string
}

// dlqRecord wraps a message that could not be delivered.
type dlqRecord struct {
	OriginalKey   string          `json:"original_key"`
	OriginalValue json.RawMessage `json:"original_value"`
	DLQReason     string          `json:"dlq_reason"`
	Timestamp     string          `json:"timestamp"`
}

// NewDLQProducer ensures the dead letter topic exists.
func NewDLQProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*DLQProducer, error) {
	if cfg.DLQTopic == "" {
		return nil, fmt.Errorf("kafka dlq topic is not configured")
	}

	writer, err := newTopicWriter(ctx, logger, cfg, cfg.DLQTopic, &kafka.LeastBytes{})
	if err != nil {
		return nil, fmt.Errorf("dlq producer: %w", err)
	}

	return &DLQProducer{
		logger:   logger,
		writer:   writer,
		dlqTopic: cfg.DLQTopic,
	}, nil
}

// PublishToDLQ wraps the undeliverable value with the failure reason. Values
// that are not JSON are stored as a JSON string.
func (p *DLQProducer) PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error {
	original := json.RawMessage(originalMessageValue)
	if !json.Valid(originalMessageValue) {
		quoted, err := json.Marshal(string(originalMessageValue))
		if err != nil {
			return fmt.Errorf("failed to quote DLQ message value: %w", err)
		}
		original = quoted
	}

	value, err := json.Marshal(dlqRecord{
		OriginalKey:   key,
		OriginalValue: original,
		DLQReason:     reason,
		Timestamp:     time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal DLQ message value: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: DLQHeaderReason, Value: []byte(reason)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message to DLQ",
			"topic", p.dlqTopic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to DLQ %s: %w", p.dlqTopic, err)
	}

	p.logger.Info("Published message to DLQ",
		"topic", p.dlqTopic,
		"key", key,
		"reason", reason,
	)
	return nil
}

func (p *DLQProducer) Close() error {
	p.logger.Info("Closing DLQ Kafka message producer", "topic", p.dlqTopic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close dlq kafka writer for topic %s: %w", p.dlqTopic, err)
	}
	return nil
}
