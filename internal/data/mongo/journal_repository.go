package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// JournalRepository implements journal.Repository on MongoDB. Details are
// embedded in the journal document.
type JournalRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewJournalRepository creates a new MongoDB journal repository
func NewJournalRepository(logger *slog.Logger, db *mongo.Database) journal.Repository {
	return &JournalRepository{
		coll:   db.Collection(JournalsCollection),
		logger: logger,
	}
}

func (r *JournalRepository) Create(ctx context.Context, j *journal.Journal) error {
	if _, err := r.coll.InsertOne(ctx, j); err != nil {
		r.logger.Error("Failed to create journal", "journal_id", j.ID, "error", err)
		return fmt.Errorf("failed to create journal: %w", err)
	}
	return nil
}

func (r *JournalRepository) GetByID(ctx context.Context, id string) (*journal.Journal, error) {
	var j journal.Journal
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, journal.ErrJournalNotFound{JournalID: id}
		}
		r.logger.Error("Failed to get journal", "journal_id", id, "error", err)
		return nil, fmt.Errorf("failed to get journal: %w", err)
	}
	return &j, nil
}

// List filters on journal_date only when the range has both bounds. The end
// day is inclusive.
func (r *JournalRepository) List(ctx context.Context, dr shared.DateRange) ([]*journal.Journal, error) {
	filter := dateFilter(dr)
	opts := options.Find().SetSort(bson.D{{Key: "journal_date", Value: -1}, {Key: "created_at", Value: -1}})

	journals, err := findAll[journal.Journal](ctx, r.coll, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list journals", "range", dr.String(), "error", err)
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nil
}

func dateFilter(dr shared.DateRange) bson.M {
	if !dr.Bounded() {
		return bson.M{}
	}
	from, until := dr.Window()
	return bson.M{"journal_date": bson.M{"$gte": from, "$lt": until}}
}

// Update replaces the whole document, details included.
func (r *JournalRepository) Update(ctx context.Context, j *journal.Journal) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": j.ID}, j)
	if err != nil {
		r.logger.Error("Failed to update journal", "journal_id", j.ID, "error", err)
		return fmt.Errorf("failed to update journal: %w", err)
	}
	if result.MatchedCount == 0 {
		return journal.ErrJournalNotFound{JournalID: j.ID}
	}
	return nil
}

func (r *JournalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete journal", "journal_id", id, "error", err)
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	if result.DeletedCount == 0 {
		return journal.ErrJournalNotFound{JournalID: id}
	}
	return nil
}

func (r *JournalRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to delete all journals", "error", err)
		return 0, fmt.Errorf("failed to delete all journals: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *JournalRepository) CountByAccount(ctx context.Context, accountID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"detail.account": accountID})
	if err != nil {
		r.logger.Error("Failed to count journals for account", "account_id", accountID, "error", err)
		return 0, fmt.Errorf("failed to count journals for account: %w", err)
	}
	return count, nil
}
