package reportrun

import (
	"testing"
	"time"

	"github.com/backoffice-ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewRun(t *testing.T) {
	r := shared.NewDateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	run := NewRun(KindTrialBalance, r, 12, "u-1")

	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, KindTrialBalance, run.Kind)
	assert.Equal(t, 12, run.Rows)
	assert.Equal(t, r.Start, run.StartDate)
	assert.Equal(t, r.End, run.EndDate)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	unbounded := NewRun(KindGeneralLedger, shared.DateRange{Start: &start}, 0, "u-1")
	assert.Nil(t, unbounded.StartDate, "half ranges are recorded as unbounded")
	assert.Nil(t, unbounded.EndDate)
}
