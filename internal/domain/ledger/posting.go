// Package ledger turns journals into per-account balances and the derived
// financial views: trial balance, income statement and general ledger.
//
// Everything here is pure. Callers load accounts and journals from storage,
// flatten the journals into postings and hand both to the builders.
package ledger

import (
	"sort"
	"time"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/journal"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// Posting is one journal detail normalized to an (account, date, debit,
// credit) tuple.
type Posting struct {
	AccountID   string    `json:"account"`
	JournalID   string    `json:"journal_id"`
	JournalName string    `json:"journal_name"`
	Date        time.Time `json:"journal_date"`
	Debit       int64     `json:"debit"`
	Credit      int64     `json:"credit"`
	Note        string    `json:"note,omitempty"`

	recorded time.Time
}

// Flatten expands journals into postings whose journal date falls in r,
// ordered by journal date ascending. Journals sharing a date keep the order
// they were recorded in, and details keep their position in the journal.
func Flatten(journals []*journal.Journal, r shared.DateRange) []Posting {
	postings := make([]Posting, 0, len(journals)*2)
	for _, j := range journals {
		if j == nil || !r.Contains(j.Date) {
			continue
		}
		for _, d := range j.Details {
			postings = append(postings, Posting{
				AccountID:   d.AccountID,
				JournalID:   j.ID,
				JournalName: j.Name,
				Date:        j.Date,
				Debit:       d.Debit,
				Credit:      d.Credit,
				Note:        d.Note,
				recorded:    j.CreatedAt,
			})
		}
	}
	sortChronologically(postings)
	return postings
}

func sortChronologically(postings []Posting) {
	sort.SliceStable(postings, func(i, k int) bool {
		a, b := postings[i], postings[k]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.recorded.Equal(b.recorded) {
			return a.recorded.Before(b.recorded)
		}
		return a.JournalID < b.JournalID
	})
}

// sortedAccounts returns the chart of accounts ordered by code, with
// uncoded accounts last, then by name.
func sortedAccounts(accounts []*account.Account) []*account.Account {
	out := make([]*account.Account, 0, len(accounts))
	for _, a := range accounts {
		if a != nil {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, k int) bool {
		a, b := out[i], out[k]
		switch {
		case a.Code != nil && b.Code != nil && *a.Code != *b.Code:
			return *a.Code < *b.Code
		case a.Code != nil && b.Code == nil:
			return true
		case a.Code == nil && b.Code != nil:
			return false
		case a.Name != b.Name:
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out
}
