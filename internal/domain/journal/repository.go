package journal

import (
	"context"

	"github.com/backoffice-ledger/internal/domain/shared"
)

// Repository defines journal persistence operations
type Repository interface {
	Create(ctx context.Context, j *Journal) error
	GetByID(ctx context.Context, id string) (*Journal, error)
	// List returns journals inside the range, latest journal_date first.
	List(ctx context.Context, r shared.DateRange) ([]*Journal, error)
	Update(ctx context.Context, j *Journal) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	// CountByAccount counts journals with at least one detail on the account.
	CountByAccount(ctx context.Context, accountID string) (int64, error)
}

// ErrJournalNotFound indicates missing journal
type ErrJournalNotFound struct {
	JournalID string
}

func (e ErrJournalNotFound) Error() string {
	return "journal not found: " + e.JournalID
}

// Is matches any ErrJournalNotFound when the target carries no id.
func (e ErrJournalNotFound) Is(target error) bool {
	t, ok := target.(ErrJournalNotFound)
	if !ok {
		return false
	}
	return t.JournalID == "" || t.JournalID == e.JournalID
}

// ErrUnknownAccount is returned when a detail references an account that
// does not exist.
type ErrUnknownAccount struct {
	AccountID string
}

func (e ErrUnknownAccount) Error() string {
	return "detail references unknown account: " + e.AccountID
}
