package outbox

import (
	"context"

	"github.com/backoffice-ledger/internal/domain/shared"
)

// Repository manages outbox message persistence
type Repository interface {
	Create(ctx context.Context, message *Message) error
	// GetPending returns up to limit pending messages, oldest first.
	GetPending(ctx context.Context, limit int) ([]*Message, error)
	UpdateStatus(ctx context.Context, id string, status shared.OutboxStatus) error
	IncrementAttempts(ctx context.Context, id string) error
}

// ErrMessageNotFound indicates missing outbox message
type ErrMessageNotFound struct {
	ID string
}

func (e ErrMessageNotFound) Error() string {
	return "outbox message not found: " + e.ID
}
