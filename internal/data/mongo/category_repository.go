package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice-ledger/internal/domain/catalog"
)

// CategoryRepository implements catalog.CategoryRepository on MongoDB
type CategoryRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewCategoryRepository creates a new MongoDB category repository
func NewCategoryRepository(logger *slog.Logger, db *mongo.Database) catalog.CategoryRepository {
	return &CategoryRepository{
		coll:   db.Collection(CategoriesCollection),
		logger: logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		r.logger.Error("Failed to create category", "category_id", c.ID, "error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrCategoryNotFound{CategoryID: id}
		}
		r.logger.Error("Failed to get category", "category_id", id, "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	categories, err := findAll[catalog.Category](ctx, r.coll, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list categories", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) ListByIDs(ctx context.Context, ids []string) ([]*catalog.Category, error) {
	categories, err := findAll[catalog.Category](ctx, r.coll, idsFilter(ids))
	if err != nil {
		r.logger.Error("Failed to load categories", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete category", "category_id", id, "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return catalog.ErrCategoryNotFound{CategoryID: id}
	}
	return nil
}

// CommentRepository implements catalog.CommentRepository on MongoDB
type CommentRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewCommentRepository creates a new MongoDB comment repository
func NewCommentRepository(logger *slog.Logger, db *mongo.Database) catalog.CommentRepository {
	return &CommentRepository{
		coll:   db.Collection(CommentsCollection),
		logger: logger,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *catalog.Comment) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		r.logger.Error("Failed to create comment", "comment_id", c.ID, "error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) ListByIDs(ctx context.Context, ids []string) ([]*catalog.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	comments, err := findAll[catalog.Comment](ctx, r.coll, idsFilter(ids), opts)
	if err != nil {
		r.logger.Error("Failed to load comments", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"product": productID}); err != nil {
		r.logger.Error("Failed to delete product comments", "product_id", productID, "error", err)
		return fmt.Errorf("failed to delete product comments: %w", err)
	}
	return nil
}
