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

	"github.com/backoffice-ledger/internal/domain/catalog"
)

// ProductRepository implements catalog.ProductRepository on MongoDB
type ProductRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewProductRepository creates a new MongoDB product repository
func NewProductRepository(logger *slog.Logger, db *mongo.Database) catalog.ProductRepository {
	return &ProductRepository{
		coll:   db.Collection(ProductsCollection),
		logger: logger,
	}
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		r.logger.Error("Failed to create product", "product_id", p.ID, "error", err)
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrProductNotFound{ProductID: id}
		}
		r.logger.Error("Failed to get product", "product_id", id, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*catalog.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	products, err := findAll[catalog.Product](ctx, r.coll, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list products", "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Update writes the catalog fields including stock. Comments are left alone.
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"description": p.Description,
		"images":      p.Images,
		"category":    p.CategoryID,
		"stock":       p.Stock,
		"price":       p.Price,
		"updated_at":  p.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		r.logger.Error("Failed to update product", "product_id", p.ID, "error", err)
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalog.ErrProductNotFound{ProductID: p.ID}
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete product", "product_id", id, "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return catalog.ErrProductNotFound{ProductID: id}
	}
	return nil
}

// ReserveStock decrements stock in a single conditional update, so two
// concurrent reservations can never take the last unit twice.
func (r *ProductRepository) ReserveStock(ctx context.Context, id string, qty int) error {
	filter := bson.M{"_id": id, "stock": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		r.logger.Error("Failed to reserve stock", "product_id", id, "quantity", qty, "error", err)
		return fmt.Errorf("failed to reserve stock: %w", err)
	}
	if result.MatchedCount == 1 {
		return nil
	}

	// Nothing matched: either the product is gone or stock is short.
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return catalog.ErrInsufficientStock{ProductID: id, Requested: qty, Available: p.Stock}
}

func (r *ProductRepository) ReleaseStock(ctx context.Context, id string, qty int) error {
	update := bson.M{
		"$inc": bson.M{"stock": qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Failed to release stock", "product_id", id, "quantity", qty, "error", err)
		return fmt.Errorf("failed to release stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalog.ErrProductNotFound{ProductID: id}
	}
	return nil
}

func (r *ProductRepository) AddComment(ctx context.Context, productID, commentID string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$push": bson.M{"comment": commentID}})
	if err != nil {
		r.logger.Error("Failed to attach comment", "product_id", productID, "comment_id", commentID, "error", err)
		return fmt.Errorf("failed to attach comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalog.ErrProductNotFound{ProductID: productID}
	}
	return nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"category": categoryID})
	if err != nil {
		r.logger.Error("Failed to count products in category", "category_id", categoryID, "error", err)
		return 0, fmt.Errorf("failed to count products in category: %w", err)
	}
	return count, nil
}
