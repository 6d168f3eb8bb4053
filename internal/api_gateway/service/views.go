package service

import (
	"time"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/order"
	"github.com/backoffice-ledger/internal/domain/user"
	"github.com/backoffice-ledger/internal/report"
)

// AccountRef is the account summary embedded in populated views. Only ID is
// set when the account no longer exists.
type AccountRef struct {
	ID   string       `json:"id"`
	Name string       `json:"name,omitempty"`
	Code *int         `json:"account_code,omitempty"`
	Type account.Type `json:"account_type,omitempty"`
}

func accountRef(id string, accounts map[string]*account.Account) AccountRef {
	a, ok := accounts[id]
	if !ok {
		return AccountRef{ID: id}
	}
	return AccountRef{ID: a.ID, Name: a.Name, Code: a.Code, Type: a.Type}
}

// DetailView is a journal detail with its account populated
type DetailView struct {
	Debit   int64      `json:"debit"`
	Credit  int64      `json:"credit"`
	Account AccountRef `json:"account"`
	Note    string     `json:"note,omitempty"`
}

// JournalView is a journal with populated details
type JournalView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Image       string       `json:"image,omitempty"`
	Date        time.Time    `json:"journal_date"`
	DataChange  bool         `json:"data_change"`
	Note        string       `json:"note,omitempty"`
	Details     []DetailView `json:"detail"`
	TotalDebit  int64        `json:"totalDebit"`
	TotalCredit int64        `json:"totalCredit"`
	Balanced    bool         `json:"balanced"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func newJournalView(j *journal.Journal, accounts map[string]*account.Account) *JournalView {
	details := make([]DetailView, len(j.Details))
	for i, d := range j.Details {
		details[i] = DetailView{
			Debit:   d.Debit,
			Credit:  d.Credit,
			Account: accountRef(d.AccountID, accounts),
			Note:    d.Note,
		}
	}
	debit, credit := j.Totals()
	return &JournalView{
		ID:          j.ID,
		Name:        j.Name,
		Image:       j.Image,
		Date:        j.Date,
		DataChange:  j.DataChange,
		Note:        j.Note,
		Details:     details,
		TotalDebit:  debit,
		TotalCredit: credit,
		Balanced:    j.Balanced(),
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ProductView is a product with its category and comments populated
type ProductView struct {
	*catalog.Product
	Category *catalog.Category  `json:"category"`
	Comments []*catalog.Comment `json:"comment"`
}

// TransactionView is an order with its product and user populated and the
// amounts also rendered as rupiah strings. Product and User are nil when the
// referenced record is gone.
type TransactionView struct {
	*order.Transaction
	Product        *catalog.Product `json:"product"`
	User           *user.User       `json:"user"`
	ProductID      string           `json:"product_id"`
	UserID         string           `json:"user_id"`
	SubtotalText   string           `json:"subtotal_formatted"`
	PPNText        string           `json:"ppn_formatted"`
	GrandTotalText string           `json:"grandtotal_formatted"`
}

func newTransactionView(t *order.Transaction, p *catalog.Product, u *user.User) *TransactionView {
	return &TransactionView{
		Transaction:    t,
		Product:        p,
		User:           u,
		ProductID:      t.ProductID,
		UserID:         t.UserID,
		SubtotalText:   report.FormatCurrency(t.Subtotal),
		PPNText:        report.FormatCurrency(t.PPN),
		GrandTotalText: report.FormatCurrency(t.GrandTotal),
	}
}

// ExportFile is a rendered spreadsheet ready to be sent
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

// CreateTransactionInput carries a new order. UserID defaults to the caller
// and Status to unpaid.
type CreateTransactionInput struct {
	ProductID       string
	UserID          string
	CallerID        string
	Quantity        int
	Type            order.Type
	Status          *order.Status
	PaymentDocument string
}

// RegisterInput carries a registration. CallerRole is the role of the
// authenticated caller, empty for anonymous sign ups.
type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	Address    string
	Role       user.Role
	CallerRole user.Role
}

// LoginResult is a signed session token
type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}
