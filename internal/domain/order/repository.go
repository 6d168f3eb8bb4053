package order

import (
	"context"
	"time"
)

// Repository defines order persistence operations
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	// List returns every order, newest first.
	List(ctx context.Context) ([]*Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*Transaction, error)
	// ListByStatusBetween returns orders in status created within [from, to).
	ListByStatusBetween(ctx context.Context, status Status, from, to time.Time) ([]*Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id string) error

	CountByStatus(ctx context.Context) (map[Status]int64, error)
	CountByProduct(ctx context.Context, productID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// ErrTransactionNotFound indicates missing order
type ErrTransactionNotFound struct {
	TransactionID string
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID
}

// Is matches any ErrTransactionNotFound when the target carries no id.
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	return t.TransactionID == "" || t.TransactionID == e.TransactionID
}
