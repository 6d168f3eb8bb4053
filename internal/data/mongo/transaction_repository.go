package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice-ledger/internal/domain/order"
)

// TransactionRepository implements order.Repository on MongoDB
type TransactionRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewTransactionRepository creates a new MongoDB order repository
func NewTransactionRepository(logger *slog.Logger, db *mongo.Database) order.Repository {
	return &TransactionRepository{
		coll:   db.Collection(TransactionsCollection),
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *order.Transaction) error {
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		r.logger.Error("Failed to create transaction", "transaction_id", t.ID, "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*order.Transaction, error) {
	var t order.Transaction
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrTransactionNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction", "transaction_id", id, "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*order.Transaction, error) {
	return r.find(ctx, bson.M{}, "list transactions")
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*order.Transaction, error) {
	return r.find(ctx, bson.M{"user": userID}, "list user transactions")
}

func (r *TransactionRepository) ListByStatusBetween(ctx context.Context, status order.Status, from, to time.Time) ([]*order.Transaction, error) {
	filter := bson.M{
		"status":     status,
		"created_at": bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter, "list transactions by status")
}

func (r *TransactionRepository) find(ctx context.Context, filter bson.M, op string) ([]*order.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	txs, err := findAll[order.Transaction](ctx, r.coll, filter, opts)
	if err != nil {
		r.logger.Error("Failed to "+op, "error", err)
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return txs, nil
}

func (r *TransactionRepository) Update(ctx context.Context, t *order.Transaction) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		r.logger.Error("Failed to update transaction", "transaction_id", t.ID, "error", err)
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if result.MatchedCount == 0 {
		return order.ErrTransactionNotFound{TransactionID: t.ID}
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete transaction", "transaction_id", id, "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.DeletedCount == 0 {
		return order.ErrTransactionNotFound{TransactionID: id}
	}
	return nil
}

type statusCount struct {
	Status order.Status `bson:"_id"`
	Count  int64        `bson:"count"`
}

// CountByStatus groups orders by status on the server.
func (r *TransactionRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to count transactions by status", "error", err)
		return nil, fmt.Errorf("failed to count transactions by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []statusCount
	if err := cursor.All(ctx, &rows); err != nil {
		r.logger.Error("Failed to decode status counts", "error", err)
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *TransactionRepository) CountByProduct(ctx context.Context, productID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"product": productID})
	if err != nil {
		r.logger.Error("Failed to count transactions for product", "product_id", productID, "error", err)
		return 0, fmt.Errorf("failed to count transactions for product: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		r.logger.Error("Failed to count transactions for user", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count transactions for user: %w", err)
	}
	return count, nil
}
