package catalog

import (
	"context"
	"fmt"
)

// ProductRepository defines product persistence operations
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error

	// ReserveStock atomically decrements stock by qty when at least qty
	// units remain. It returns ErrInsufficientStock otherwise.
	ReserveStock(ctx context.Context, id string, qty int) error
	// ReleaseStock gives qty units back.
	ReleaseStock(ctx context.Context, id string, qty int) error

	AddComment(ctx context.Context, productID, commentID string) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

// CategoryRepository defines category persistence operations
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines comment persistence operations
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByIDs(ctx context.Context, ids []string) ([]*Comment, error)
	DeleteByProduct(ctx context.Context, productID string) error
}

// ErrProductNotFound indicates missing product
type ErrProductNotFound struct {
	ProductID string
}

func (e ErrProductNotFound) Error() string {
	return "product not found: " + e.ProductID
}

// Is matches any ErrProductNotFound when the target carries no id.
func (e ErrProductNotFound) Is(target error) bool {
	t, ok := target.(ErrProductNotFound)
	if !ok {
		return false
	}
	return t.ProductID == "" || t.ProductID == e.ProductID
}

// ErrCategoryNotFound indicates missing category
type ErrCategoryNotFound struct {
	CategoryID string
}

func (e ErrCategoryNotFound) Error() string {
	return "category not found: " + e.CategoryID
}

// ErrInsufficientStock is returned when an order asks for more units than
// the product holds.
type ErrInsufficientStock struct {
	ProductID string
	Requested int
	Available int
}

func (e ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// ErrProductInUse is returned when deleting a product still referenced by
// transactions.
type ErrProductInUse struct {
	ProductID  string
	References int64
}

func (e ErrProductInUse) Error() string {
	return fmt.Sprintf("product %s is referenced by %d transaction(s)", e.ProductID, e.References)
}

// ErrCategoryInUse is returned when deleting a category that still has
// products.
type ErrCategoryInUse struct {
	CategoryID string
	References int64
}

func (e ErrCategoryInUse) Error() string {
	return fmt.Sprintf("category %s is used by %d product(s)", e.CategoryID, e.References)
}
