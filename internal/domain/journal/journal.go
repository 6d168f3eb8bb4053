package journal

import (
	"errors"
	"strings"
	"time"

	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrNameTooShort   = errors.New("journal name must be at least 3 characters")
	ErrNoDetails      = errors.New("journal must contain at least one detail")
	ErrNegativeAmount = errors.New("debit and credit cannot be negative")
	ErrMissingAccount = errors.New("every detail must reference an account")
	ErrMissingDate    = errors.New("journal date is required")
)

// Detail is one debit/credit posting line of a journal. Balanced journals are
// not enforced.
type Detail struct {
	Debit     int64  `json:"debit" bson:"debit"`
	Credit    int64  `json:"credit" bson:"credit"`
	AccountID string `json:"account" bson:"account"`
	Note      string `json:"note,omitempty" bson:"note,omitempty"`
}

// Journal is a dated record owning its ordered posting lines
type Journal struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Image      string    `json:"image,omitempty" bson:"image,omitempty"`
	Date       time.Time `json:"journal_date" bson:"journal_date"`
	DataChange bool      `json:"data_change" bson:"data_change"`
	Note       string    `json:"note,omitempty" bson:"note,omitempty"`
	Details    []Detail  `json:"detail" bson:"detail"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Draft carries the client-controlled fields of a journal.
type Draft struct {
	Name       string
	Image      string
	Date       time.Time
	DataChange bool
	Note       string
	Details    []Detail
}

// NewJournal validates the draft and assigns a fresh id.
func NewJournal(d Draft) (*Journal, error) {
	d.Name = strings.TrimSpace(d.Name)
	if err := d.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Journal{
		ID:         uuid.NewString(),
		Name:       d.Name,
		Image:      d.Image,
		Date:       shared.TruncateDay(d.Date),
		DataChange: d.DataChange,
		Note:       d.Note,
		Details:    append([]Detail(nil), d.Details...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Apply replaces the journal's fields with the draft, keeping id and
// creation time.
func (j *Journal) Apply(d Draft) error {
	d.Name = strings.TrimSpace(d.Name)
	if err := d.validate(); err != nil {
		return err
	}

	j.Name = d.Name
	j.Image = d.Image
	j.Date = shared.TruncateDay(d.Date)
	j.DataChange = d.DataChange
	j.Note = d.Note
	j.Details = append([]Detail(nil), d.Details...)
	j.UpdatedAt = time.Now().UTC()
	return nil
}

// AccountIDs returns the distinct accounts referenced by the details, in
// first-seen order.
func (j *Journal) AccountIDs() []string {
	seen := make(map[string]struct{}, len(j.Details))
	ids := make([]string, 0, len(j.Details))
	for _, d := range j.Details {
		if _, ok := seen[d.AccountID]; ok {
			continue
		}
		seen[d.AccountID] = struct{}{}
		ids = append(ids, d.AccountID)
	}
	return ids
}

// Totals sums debit and credit across the details.
func (j *Journal) Totals() (debit, credit int64) {
	for _, d := range j.Details {
		debit += d.Debit
		credit += d.Credit
	}
	return debit, credit
}

// Balanced reports whether debits equal credits. Informational only.
func (j *Journal) Balanced() bool {
	debit, credit := j.Totals()
	return debit == credit
}

func (d Draft) validate() error {
	if len([]rune(d.Name)) < 3 {
		return ErrNameTooShort
	}
	if d.Date.IsZero() {
		return ErrMissingDate
	}
	if len(d.Details) == 0 {
		return ErrNoDetails
	}
	for _, det := range d.Details {
		if det.Debit < 0 || det.Credit < 0 {
			return ErrNegativeAmount
		}
		if strings.TrimSpace(det.AccountID) == "" {
			return ErrMissingAccount
		}
	}
	return nil
}
