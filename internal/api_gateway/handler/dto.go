package handler

import (
	"time"

	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/order"
	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/backoffice-ledger/internal/domain/user"
)

// AccountRequest represents a request to create or update an account
type AccountRequest struct {
	Name        string `json:"name" binding:"required,min=3"`
	AccountCode *int   `json:"account_code" binding:"omitempty,gte=0"`
	AccountType int    `json:"account_type" binding:"required,gte=1,lte=8"`
}

// DetailRequest is one posting line of a journal request
type DetailRequest struct {
	Account string `json:"account" binding:"required"`
	Debit   int64  `json:"debit" binding:"gte=0"`
	Credit  int64  `json:"credit" binding:"gte=0"`
	Note    string `json:"note"`
}

// JournalRequest represents a request to create or update a journal
type JournalRequest struct {
	Name        string          `json:"name" binding:"required,min=3"`
	Image       string          `json:"image"`
	JournalDate string          `json:"journal_date" binding:"required,mmddyyyy"`
	DataChange  bool            `json:"data_change"`
	Note        string          `json:"note"`
	Detail      []DetailRequest `json:"detail" binding:"required,min=1,dive"`
}

func (r JournalRequest) draft() journal.Draft {
	// validated by the mmddyyyy rule
	date, _ := time.ParseInLocation(shared.DateLayout, r.JournalDate, time.UTC)

	details := make([]journal.Detail, 0, len(r.Detail))
	for _, d := range r.Detail {
		details = append(details, journal.Detail{
			AccountID: d.Account,
			Debit:     d.Debit,
			Credit:    d.Credit,
			Note:      d.Note,
		})
	}
	return journal.Draft{
		Name:       r.Name,
		Image:      r.Image,
		Date:       date,
		DataChange: r.DataChange,
		Note:       r.Note,
		Details:    details,
	}
}

// DateQuery holds the optional MM/DD/YYYY range of listing and report
// endpoints. Both bounds must be present for the range to apply.
type DateQuery struct {
	StartDate string `form:"startDate" binding:"omitempty,mmddyyyy"`
	EndDate   string `form:"endDate" binding:"omitempty,mmddyyyy"`
}

func (q DateQuery) rng() (shared.DateRange, error) {
	return shared.ParseDateRange(q.StartDate, q.EndDate)
}

// ReportQuery extends DateQuery with the report selectors
type ReportQuery struct {
	DateQuery
	Dated   bool   `form:"dated"`
	Account string `form:"account"`
}

// HistoryQuery selects how many export runs to return
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// ProductRequest represents a request to create or update a product
type ProductRequest struct {
	Title       string   `json:"title" binding:"required,min=5,max=100"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    string   `json:"category" binding:"required"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Price       int64    `json:"price" binding:"gte=0"`
}

func (r ProductRequest) draft() catalog.ProductDraft {
	return catalog.ProductDraft{
		Title:       r.Title,
		Description: r.Description,
		Images:      r.Images,
		CategoryID:  r.Category,
		Stock:       r.Stock,
		Price:       r.Price,
	}
}

// CategoryRequest represents a request to create a category
type CategoryRequest struct {
	Name  string `json:"name" binding:"required,min=3"`
	Image string `json:"image"`
}

// CommentRequest represents a comment posted on a product
type CommentRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// CreateTransactionRequest represents a request to place an order. User
// defaults to the caller.
type CreateTransactionRequest struct {
	Status          string `json:"status" binding:"omitempty,oneof=unpaid paid processing shipped done"`
	Product         string `json:"product" binding:"required"`
	User            string `json:"user"`
	PaymentDocument string `json:"payment_document"`
	Quantity        int    `json:"quantity" binding:"required,gte=1"`
	TransactionType string `json:"transaction_type" binding:"required,oneof=online offline"`
}

func (r CreateTransactionRequest) input(callerID string) service.CreateTransactionInput {
	in := service.CreateTransactionInput{
		ProductID:       r.Product,
		UserID:          r.User,
		CallerID:        callerID,
		Quantity:        r.Quantity,
		Type:            order.Type(r.TransactionType),
		PaymentDocument: r.PaymentDocument,
	}
	if r.Status != "" {
		status := order.Status(r.Status)
		in.Status = &status
	}
	return in
}

// UpdateTransactionRequest carries the fields of an order update. Absent
// fields are left unchanged.
type UpdateTransactionRequest struct {
	Status          *string `json:"status" binding:"omitempty,oneof=unpaid paid processing shipped done"`
	Product         *string `json:"product" binding:"omitempty,min=1"`
	PaymentDocument *string `json:"payment_document"`
	Quantity        *int    `json:"quantity" binding:"omitempty,gte=1"`
	TransactionType *string `json:"transaction_type" binding:"omitempty,oneof=online offline"`
}

func (r UpdateTransactionRequest) patch() order.Patch {
	p := order.Patch{
		ProductID:       r.Product,
		Quantity:        r.Quantity,
		PaymentDocument: r.PaymentDocument,
	}
	if r.Status != nil {
		s := order.Status(*r.Status)
		p.Status = &s
	}
	if r.TransactionType != nil {
		t := order.Type(*r.TransactionType)
		p.Type = &t
	}
	return p
}

// RegisterRequest represents a user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

func (r RegisterRequest) input(callerRole string) service.RegisterInput {
	return service.RegisterInput{
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		Address:    r.Address,
		Role:       user.Role(r.Role),
		CallerRole: user.Role(callerRole),
	}
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	User      *user.User `json:"user"`
}
