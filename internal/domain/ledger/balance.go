package ledger

import (
	"sort"
	"time"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/shared"
)

// Balance is the aggregate of one account's postings. Total is always
// TotalDebit - TotalCredit.
type Balance struct {
	AccountID   string       `json:"id"`
	Name        string       `json:"name"`
	Code        *int         `json:"account_code,omitempty"`
	Type        account.Type `json:"account_type"`
	TotalDebit  int64        `json:"totalDebit"`
	TotalCredit int64        `json:"totalCredit"`
	Total       int64        `json:"total"`
	Entries     int          `json:"entries"`
}

func newBalance(a *account.Account) Balance {
	return Balance{AccountID: a.ID, Name: a.Name, Code: a.Code, Type: a.Type}
}

func (b *Balance) add(p Posting) {
	b.TotalDebit += p.Debit
	b.TotalCredit += p.Credit
	b.Total = b.TotalDebit - b.TotalCredit
	b.Entries++
}

// Aggregate returns one row per account, in chart order. Accounts without
// postings get zero sums. Postings on unknown accounts are ignored.
func Aggregate(accounts []*account.Account, postings []Posting) []Balance {
	ordered := sortedAccounts(accounts)
	rows := make([]Balance, len(ordered))
	index := make(map[string]int, len(ordered))
	for i, a := range ordered {
		rows[i] = newBalance(a)
		index[a.ID] = i
	}

	for _, p := range postings {
		if i, ok := index[p.AccountID]; ok {
			rows[i].add(p)
		}
	}
	return rows
}

// TotalsByAccount is Aggregate restricted to accounts that have at least
// one posting.
func TotalsByAccount(accounts []*account.Account, postings []Posting) []Balance {
	all := Aggregate(accounts, postings)
	rows := make([]Balance, 0, len(all))
	for _, b := range all {
		if b.Entries > 0 {
			rows = append(rows, b)
		}
	}
	return rows
}

// TrialBalance lists every account with its totals over a period.
type TrialBalance struct {
	Rows        []Balance       `json:"rows"`
	TotalDebit  int64           `json:"totalDebit"`
	TotalCredit int64           `json:"totalCredit"`
	Total       int64           `json:"total"`
	ByDate      []DatedBalances `json:"byDate,omitempty"`
}

// DatedBalances holds the accounts that moved on a single journal date.
type DatedBalances struct {
	Date        time.Time `json:"date"`
	Rows        []Balance `json:"rows"`
	TotalDebit  int64     `json:"totalDebit"`
	TotalCredit int64     `json:"totalCredit"`
}

// BuildTrialBalance aggregates every account. When dated is set the result
// also carries a per-date breakdown in ascending date order.
func BuildTrialBalance(accounts []*account.Account, postings []Posting, dated bool) TrialBalance {
	tb := TrialBalance{Rows: Aggregate(accounts, postings)}
	for _, row := range tb.Rows {
		tb.TotalDebit += row.TotalDebit
		tb.TotalCredit += row.TotalCredit
	}
	tb.Total = tb.TotalDebit - tb.TotalCredit

	if dated {
		tb.ByDate = breakdownByDate(accounts, postings)
	}
	return tb
}

func breakdownByDate(accounts []*account.Account, postings []Posting) []DatedBalances {
	byDay := make(map[time.Time][]Posting)
	for _, p := range postings {
		d := shared.TruncateDay(p.Date)
		byDay[d] = append(byDay[d], p)
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, k int) bool { return days[i].Before(days[k]) })

	out := make([]DatedBalances, 0, len(days))
	for _, d := range days {
		group := DatedBalances{Date: d, Rows: TotalsByAccount(accounts, byDay[d])}
		if len(group.Rows) == 0 {
			continue
		}
		for _, row := range group.Rows {
			group.TotalDebit += row.TotalDebit
			group.TotalCredit += row.TotalCredit
		}
		out = append(out, group)
	}
	return out
}

// IncomeStatement splits revenue (type 4) and expense (type 5) accounts.
// NetIncome is TotalRevenue - TotalExpense using the debit-minus-credit
// totals of each side.
type IncomeStatement struct {
	Revenue      []Balance `json:"revenue"`
	Expense      []Balance `json:"expense"`
	TotalRevenue int64     `json:"totalRevenue"`
	TotalExpense int64     `json:"totalExpense"`
	NetIncome    int64     `json:"netIncome"`
}

// BuildIncomeStatement aggregates revenue and expense accounts in list form.
func BuildIncomeStatement(accounts []*account.Account, postings []Posting) IncomeStatement {
	is := IncomeStatement{Revenue: []Balance{}, Expense: []Balance{}}
	for _, row := range Aggregate(accounts, postings) {
		switch row.Type {
		case account.TypeRevenue:
			is.Revenue = append(is.Revenue, row)
			is.TotalRevenue += row.Total
		case account.TypeExpense:
			is.Expense = append(is.Expense, row)
			is.TotalExpense += row.Total
		}
	}
	is.NetIncome = is.TotalRevenue - is.TotalExpense
	return is
}
