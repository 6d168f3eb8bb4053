package ledger

import (
	"time"

	"github.com/backoffice-ledger/internal/domain/account"
)

// Line is one posting in an account's general ledger together with the
// running balances after it.
type Line struct {
	Date        time.Time `json:"journal_date"`
	JournalID   string    `json:"journal_id"`
	JournalName string    `json:"journal_name"`
	Note        string    `json:"note,omitempty"`
	Debit       int64     `json:"debit"`
	Credit      int64     `json:"credit"`
	SaldoDebit  int64     `json:"saldoDebit"`
	SaldoKredit int64     `json:"saldoKredit"`
	Total       int64     `json:"total"`
}

// AccountLedger is the chronological posting history of one account.
type AccountLedger struct {
	AccountID   string       `json:"id"`
	Name        string       `json:"name"`
	Code        *int         `json:"account_code,omitempty"`
	Type        account.Type `json:"account_type"`
	Lines       []Line       `json:"entries"`
	TotalDebit  int64        `json:"totalDebit"`
	TotalCredit int64        `json:"totalCredit"`
	Total       int64        `json:"total"`
}

// BuildGeneralLedger folds each account's postings in ascending date order,
// carrying the running debit and credit sums. The fold restarts for every
// account, and the closing Total equals the account's aggregate Total.
func BuildGeneralLedger(accounts []*account.Account, postings []Posting) []AccountLedger {
	ordered := sortedAccounts(accounts)
	ledgers := make([]AccountLedger, len(ordered))
	index := make(map[string]int, len(ordered))
	for i, a := range ordered {
		ledgers[i] = AccountLedger{AccountID: a.ID, Name: a.Name, Code: a.Code, Type: a.Type, Lines: []Line{}}
		index[a.ID] = i
	}

	sorted := append([]Posting(nil), postings...)
	sortChronologically(sorted)

	for _, p := range sorted {
		i, ok := index[p.AccountID]
		if !ok {
			continue
		}
		l := &ledgers[i]
		l.TotalDebit += p.Debit
		l.TotalCredit += p.Credit
		l.Total = l.TotalDebit - l.TotalCredit
		l.Lines = append(l.Lines, Line{
			Date:        p.Date,
			JournalID:   p.JournalID,
			JournalName: p.JournalName,
			Note:        p.Note,
			Debit:       p.Debit,
			Credit:      p.Credit,
			SaldoDebit:  l.TotalDebit,
			SaldoKredit: l.TotalCredit,
			Total:       l.Total,
		})
	}
	return ledgers
}

// AccountActivity is an account with the raw postings that touched it.
type AccountActivity struct {
	AccountID string       `json:"id"`
	Name      string       `json:"name"`
	Code      *int         `json:"account_code,omitempty"`
	Type      account.Type `json:"account_type"`
	Details   []Posting    `json:"journal_details"`
}

// GroupByAccount attaches postings to their accounts, in chart order.
// Accounts without postings are kept with an empty list.
func GroupByAccount(accounts []*account.Account, postings []Posting) []AccountActivity {
	ordered := sortedAccounts(accounts)
	out := make([]AccountActivity, len(ordered))
	index := make(map[string]int, len(ordered))
	for i, a := range ordered {
		out[i] = AccountActivity{AccountID: a.ID, Name: a.Name, Code: a.Code, Type: a.Type, Details: []Posting{}}
		index[a.ID] = i
	}
	for _, p := range postings {
		if i, ok := index[p.AccountID]; ok {
			out[i].Details = append(out[i].Details, p)
		}
	}
	return out
}
