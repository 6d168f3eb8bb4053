package service

import (
	"context"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/ledger"
	"github.com/backoffice-ledger/internal/domain/order"
	"github.com/backoffice-ledger/internal/domain/reportrun"
	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/backoffice-ledger/internal/domain/user"
)

// AccountService defines the chart of accounts operations
type AccountService interface {
	// CreateAccount returns ErrDuplicateAccountCode if the code is taken
	CreateAccount(ctx context.Context, name string, code *int, accountType account.Type) (*account.Account, error)
	ListAccounts(ctx context.Context) ([]*account.Account, error)
	GetAccount(ctx context.Context, id string) (*account.Account, error)
	UpdateAccount(ctx context.Context, id, name string, code *int, accountType account.Type) (*account.Account, error)
	// DeleteAccount returns ErrAccountInUse while journal details reference it
	DeleteAccount(ctx context.Context, id string) error
	// AccountsWithJournals lists every account with the postings that hit it
	// inside the range
	AccountsWithJournals(ctx context.Context, r shared.DateRange) ([]ledger.AccountActivity, error)
}

// JournalService defines journal operations. Every referenced account must
// exist when a journal is written.
type JournalService interface {
	CreateJournal(ctx context.Context, d journal.Draft) (*JournalView, error)
	ListJournals(ctx context.Context, r shared.DateRange) ([]*JournalView, error)
	GetJournal(ctx context.Context, id string) (*JournalView, error)
	UpdateJournal(ctx context.Context, id string, d journal.Draft) (*JournalView, error)
	DeleteJournal(ctx context.Context, id string) error
	DeleteAllJournals(ctx context.Context) (int64, error)
}

// ReportService aggregates the ledger into reports and spreadsheet exports
type ReportService interface {
	CalculateTotals(ctx context.Context) ([]ledger.Balance, error)
	TrialBalance(ctx context.Context, r shared.DateRange, dated bool) (ledger.TrialBalance, error)
	IncomeStatement(ctx context.Context, r shared.DateRange) (ledger.IncomeStatement, error)
	// GeneralLedger covers every account, or only accountID when set
	GeneralLedger(ctx context.Context, r shared.DateRange, accountID string) ([]ledger.AccountLedger, error)

	ExportGeneralJournal(ctx context.Context, r shared.DateRange, requestedBy string) (*ExportFile, error)
	ExportTrialBalance(ctx context.Context, r shared.DateRange, dated bool, requestedBy string) (*ExportFile, error)
	ExportIncomeStatement(ctx context.Context, r shared.DateRange, requestedBy string) (*ExportFile, error)
	ExportGeneralLedger(ctx context.Context, r shared.DateRange, accountID, requestedBy string) (*ExportFile, error)
	ExportHistory(ctx context.Context, limit int) ([]*reportrun.Run, error)
}

// CatalogService defines product, category and comment operations
type CatalogService interface {
	CreateProduct(ctx context.Context, d catalog.ProductDraft) (*catalog.Product, error)
	ListProducts(ctx context.Context) ([]*ProductView, error)
	GetProduct(ctx context.Context, id string) (*ProductView, error)
	UpdateProduct(ctx context.Context, id string, d catalog.ProductDraft) (*catalog.Product, error)
	// DeleteProduct returns ErrProductInUse while transactions reference it
	DeleteProduct(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, name, image string) (*catalog.Category, error)
	ListCategories(ctx context.Context) ([]*catalog.Category, error)
	// DeleteCategory returns ErrCategoryInUse while products reference it
	DeleteCategory(ctx context.Context, id string) error

	AddComment(ctx context.Context, productID, author, message string) (*catalog.Comment, error)
}

// OrderService defines transaction (order) operations
type OrderService interface {
	// CreateTransaction reserves stock and prices the order. It returns
	// ErrInsufficientStock when the product cannot cover the quantity.
	CreateTransaction(ctx context.Context, in CreateTransactionInput) (*TransactionView, error)
	ListTransactions(ctx context.Context) ([]*TransactionView, error)
	GetTransaction(ctx context.Context, id string) (*TransactionView, error)
	ListUserTransactions(ctx context.Context, userID string) ([]*TransactionView, error)
	UpdateTransaction(ctx context.Context, id string, patch order.Patch) (*TransactionView, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// UserService defines registration, login and user management
type UserService interface {
	// Register returns ErrDuplicateUser when the email or username is taken
	Register(ctx context.Context, in RegisterInput) (*user.User, error)
	// Login returns ErrInvalidCredentials for unknown emails and wrong
	// passwords alike
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ListUsers(ctx context.Context) ([]*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	// DeleteUser returns ErrUserInUse while transactions reference the user
	DeleteUser(ctx context.Context, id string) error
}

// DashboardService defines the order dashboard figures
type DashboardService interface {
	StatusSummary(ctx context.Context) (order.StatusSummary, error)
	// MonthlyTotals covers the current calendar year, January first
	MonthlyTotals(ctx context.Context) ([]order.MonthTotal, error)
}
