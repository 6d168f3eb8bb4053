package account

import (
	"context"
	"fmt"
	"strconv"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByCode(ctx context.Context, code int) (*Account, error)
	// List returns every account, newest first.
	List(ctx context.Context) ([]*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	AccountID string
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.AccountID
}

// Is matches any ErrAccountNotFound when the target carries no id.
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	return t.AccountID == "" || t.AccountID == e.AccountID
}

// ErrDuplicateAccountCode indicates account_code uniqueness violation
type ErrDuplicateAccountCode struct {
	Code int
}

func (e ErrDuplicateAccountCode) Error() string {
	return "account with code already exists: " + strconv.Itoa(e.Code)
}

// ErrAccountInUse is returned when deleting an account still referenced by
// journal details.
type ErrAccountInUse struct {
	AccountID  string
	References int64
}

func (e ErrAccountInUse) Error() string {
	return fmt.Sprintf("account %s is referenced by %d journal(s)", e.AccountID, e.References)
}
