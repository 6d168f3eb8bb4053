package producers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/backoffice-ledger/internal/config"
)

// KafkaWriter is the part of *kafka.Writer the producers depend on.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// newTopicWriter provisions topic on the broker and returns a writer that
// waits for all in-sync replicas.
func newTopicWriter(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig, topic string, balancer kafka.Balancer) (*kafka.Writer, error) {
	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka at %s: %w", cfg.Brokers, err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, topic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure topic %s exists: %w", topic, err)
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        topic,
		Balancer:     balancer,
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
