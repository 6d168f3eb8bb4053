package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice-ledger/internal/domain/outbox"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// OutboxRepository implements outbox.Repository on MongoDB
type OutboxRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewOutboxRepository creates a new MongoDB outbox repository
func NewOutboxRepository(logger *slog.Logger, db *mongo.Database) outbox.Repository {
	return &OutboxRepository{
		coll:   db.Collection(OutboxCollection),
		logger: logger,
	}
}

// Create stores a new message in pending status for the relay to pick up.
func (r *OutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	if _, err := r.coll.InsertOne(ctx, message); err != nil {
		r.logger.Error("Failed to create outbox message",
			"message_id", message.ID,
			"event_type", message.EventType,
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message: %w", err)
	}
	return nil
}

// GetPending returns the oldest pending messages first.
func (r *OutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	messages, err := findAll[outbox.Message](ctx, r.coll, bson.M{"status": shared.OutboxStatusPending}, opts)
	if err != nil {
		r.logger.Error("Failed to get pending outbox messages", "error", err)
		return nil, fmt.Errorf("failed to get pending outbox messages: %w", err)
	}
	return messages, nil
}

func (r *OutboxRepository) UpdateStatus(ctx context.Context, id string, status shared.OutboxStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "last_attempt_at": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Failed to update outbox message status", "message_id", id, "status", status, "error", err)
		return fmt.Errorf("failed to update outbox message status: %w", err)
	}
	if result.MatchedCount == 0 {
		return outbox.ErrMessageNotFound{ID: id}
	}
	return nil
}

func (r *OutboxRepository) IncrementAttempts(ctx context.Context, id string) error {
	update := bson.M{
		"$inc": bson.M{"attempts": 1},
		"$set": bson.M{"last_attempt_at": time.Now().UTC()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Failed to increment outbox message attempts", "message_id", id, "error", err)
		return fmt.Errorf("failed to increment outbox message attempts: %w", err)
	}
	if result.MatchedCount == 0 {
		return outbox.ErrMessageNotFound{ID: id}
	}
	return nil
}
