// Package reportrun records which spreadsheet exports were generated, for
// whom and over which period.
package reportrun

import (
	"context"
	"time"

	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind names an exportable report.
type Kind string

const (
	KindGeneralJournal  Kind = "general_journal"
	KindTrialBalance    Kind = "trial_balance"
	KindIncomeStatement Kind = "income_statement"
	KindGeneralLedger   Kind = "general_ledger"
)

// Run is one generated export
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Kind        Kind       `json:"report"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Rows        int        `json:"rows"`
	GeneratedBy string     `json:"generated_by"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// NewRun stamps an export of kind over r. Unbounded ranges leave both dates
// empty.
func NewRun(kind Kind, r shared.DateRange, rows int, generatedBy string) *Run {
	run := &Run{
		ID:          uuid.New(),
		Kind:        kind,
		Rows:        rows,
		GeneratedBy: generatedBy,
		GeneratedAt: time.Now().UTC(),
	}
	if r.Bounded() {
		run.StartDate, run.EndDate = r.Start, r.End
	}
	return run
}

// Repository persists export runs
type Repository interface {
	Create(ctx context.Context, run *Run) error
	ListRecent(ctx context.Context, limit int) ([]*Run, error)
}

// Discard drops every run. It stands in when no audit store is configured.
type Discard struct{}

func (Discard) Create(context.Context, *Run) error { return nil }

func (Discard) ListRecent(context.Context, int) ([]*Run, error) { return []*Run{}, nil }
