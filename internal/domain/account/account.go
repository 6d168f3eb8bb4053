package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNameTooShort       = errors.New("account name must be at least 3 characters")
	ErrInvalidAccountType = errors.New("account type must be between 1 and 8")
	ErrNegativeCode       = errors.New("account code cannot be negative")
)

// Type classifies an account in the chart of accounts.
type Type int

// Account types 4 and 5 drive the income statement. The remaining codes are
// carried through untouched.
const (
	TypeAsset     Type = 1
	TypeLiability Type = 2
	TypeEquity    Type = 3
	TypeRevenue   Type = 4
	TypeExpense   Type = 5

	minType Type = 1
	maxType Type = 8
)

// Valid reports whether t is one of the eight known account types.
func (t Type) Valid() bool {
	return t >= minType && t <= maxType
}

// Account is a ledger category in the chart of accounts
type Account struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Code      *int      `json:"account_code,omitempty" bson:"account_code,omitempty"`
	Type      Type      `json:"account_type" bson:"account_type"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewAccount creates a validated account with a fresh id
func NewAccount(name string, code *int, accountType Type) (*Account, error) {
	name = strings.TrimSpace(name)
	if err := validate(name, code, accountType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Account{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      code,
		Type:      accountType,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update replaces the mutable fields after validating them.
func (a *Account) Update(name string, code *int, accountType Type) error {
	name = strings.TrimSpace(name)
	if err := validate(name, code, accountType); err != nil {
		return err
	}

	a.Name = name
	a.Code = code
	a.Type = accountType
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// IsRevenue reports whether the account belongs on the revenue side.
func (a *Account) IsRevenue() bool { return a.Type == TypeRevenue }

// IsExpense reports whether the account belongs on the expense side.
func (a *Account) IsExpense() bool { return a.Type == TypeExpense }

func validate(name string, code *int, accountType Type) error {
	if len([]rune(name)) < 3 {
		return ErrNameTooShort
	}
	if code != nil && *code < 0 {
		return ErrNegativeCode
	}
	if !accountType.Valid() {
		return ErrInvalidAccountType
	}
	return nil
}
