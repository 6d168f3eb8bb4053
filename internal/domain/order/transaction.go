package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidStatus   = errors.New("status must be one of unpaid, paid, processing, shipped, done")
	ErrInvalidType     = errors.New("transaction type must be online or offline")
)

// PPNRate is the value-added tax applied to every order subtotal.
var PPNRate = decimal.NewFromFloat(0.11)

// Status is an order workflow label. Any label may be set directly.
type Status string

const (
	StatusUnpaid     Status = "unpaid"
	StatusPaid       Status = "paid"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDone       Status = "done"
)

// Statuses lists every known status in workflow order.
var Statuses = []Status{StatusUnpaid, StatusPaid, StatusProcessing, StatusShipped, StatusDone}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Type is the sales channel of an order.
type Type string

const (
	TypeOnline  Type = "online"
	TypeOffline Type = "offline"
)

// Valid reports whether t is a known channel.
func (t Type) Valid() bool {
	return t == TypeOnline || t == TypeOffline
}

// Transaction is a customer order for one product
type Transaction struct {
	ID              string    `json:"id" bson:"_id"`
	Status          Status    `json:"status" bson:"status"`
	ProductID       string    `json:"product" bson:"product"`
	UserID          string    `json:"user" bson:"user"`
	PaymentDocument string    `json:"payment_document,omitempty" bson:"payment_document,omitempty"`
	Quantity        int       `json:"quantity" bson:"quantity"`
	Type            Type      `json:"transaction_type" bson:"transaction_type"`
	Subtotal        int64     `json:"subtotal" bson:"subtotal"`
	PPN             int64     `json:"ppn" bson:"ppn"`
	GrandTotal      int64     `json:"grandtotal" bson:"grandtotal"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// Totals is the price breakdown of an order.
type Totals struct {
	Subtotal   int64
	PPN        int64
	GrandTotal int64
}

// Price computes subtotal = unitPrice x qty, ppn = 11% of subtotal rounded
// half away from zero to whole units, and grandtotal = subtotal + ppn.
func Price(unitPrice int64, qty int) Totals {
	subtotal := decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(int64(qty)))
	ppn := subtotal.Mul(PPNRate).Round(0)
	return Totals{
		Subtotal:   subtotal.IntPart(),
		PPN:        ppn.IntPart(),
		GrandTotal: subtotal.Add(ppn).IntPart(),
	}
}

// NewTransaction creates an unpaid order with its totals already priced.
func NewTransaction(productID, userID string, qty int, channel Type, paymentDocument string, unitPrice int64) (*Transaction, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	if !channel.Valid() {
		return nil, ErrInvalidType
	}

	now := time.Now().UTC()
	t := &Transaction{
		ID:              uuid.NewString(),
		Status:          StatusUnpaid,
		ProductID:       productID,
		UserID:          userID,
		PaymentDocument: paymentDocument,
		Quantity:        qty,
		Type:            channel,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	t.applyTotals(Price(unitPrice, qty))
	return t, nil
}

func (t *Transaction) applyTotals(p Totals) {
	t.Subtotal = p.Subtotal
	t.PPN = p.PPN
	t.GrandTotal = p.GrandTotal
}

// Patch holds the optional fields of an order update.
type Patch struct {
	Status          *Status
	ProductID       *string
	Quantity        *int
	Type            *Type
	PaymentDocument *string
}

// Apply merges the patch. When the product changes, totals are recomputed
// from newUnitPrice and the resulting quantity; otherwise the stored totals
// are kept.
func (t *Transaction) Apply(p Patch, newUnitPrice int64) error {
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if p.Type != nil && !p.Type.Valid() {
		return ErrInvalidType
	}

	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Quantity != nil {
		t.Quantity = *p.Quantity
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.PaymentDocument != nil {
		t.PaymentDocument = *p.PaymentDocument
	}
	if p.ProductID != nil {
		t.ProductID = *p.ProductID
		t.applyTotals(Price(newUnitPrice, t.Quantity))
	}
	t.UpdatedAt = time.Now().UTC()
	return nil
}
