package report

import (
	"fmt"

	"github.com/backoffice-ledger/internal/domain/account"
	"github.com/backoffice-ledger/internal/domain/ledger"
	"github.com/backoffice-ledger/internal/domain/shared"
)

var typeLabels = map[account.Type]string{
	account.TypeAsset:     "Aset",
	account.TypeLiability: "Kewajiban",
	account.TypeEquity:    "Ekuitas",
	account.TypeRevenue:   "Pendapatan",
	account.TypeExpense:   "Beban",
}

// TypeLabel names an account type for display.
func TypeLabel(t account.Type) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("Tipe %d", t)
}

func title(name string, r shared.DateRange) string {
	return fmt.Sprintf("%s (%s)", name, r.String())
}

func accountColumns() []Column {
	return []Column{
		{Header: "Kode", Kind: Integer, Width: 10},
		{Header: "Akun", Kind: Text, Width: 30},
		{Header: "Tipe", Kind: Text, Width: 14},
	}
}

func amountColumns(headers ...string) []Column {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Header: h, Kind: Currency, Width: 20}
	}
	return cols
}

// GeneralJournal lists every posting line in date order with its account.
func GeneralJournal(postings []ledger.Posting, accounts []*account.Account, r shared.DateRange) Table {
	byID := make(map[string]*account.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	t := Table{
		Title: title("Jurnal Umum", r),
		Sheet: "Jurnal Umum",
		Columns: append([]Column{
			{Header: "Tanggal", Kind: Date, Width: 14},
			{Header: "Jurnal", Kind: Text, Width: 30},
			{Header: "Kode", Kind: Integer, Width: 10},
			{Header: "Akun", Kind: Text, Width: 30},
			{Header: "Keterangan", Kind: Text, Width: 30},
		}, amountColumns("Debit", "Kredit")...),
	}

	var debit, credit int64
	for _, p := range postings {
		var code *int
		name := p.AccountID
		if a, ok := byID[p.AccountID]; ok {
			code, name = a.Code, a.Name
		}
		t.AddRow(dateCell(p.Date), p.JournalName, code, name, p.Note, p.Debit, p.Credit)
		debit += p.Debit
		credit += p.Credit
	}
	t.AddSummary(nil, "Total", nil, nil, nil, debit, credit)
	return t
}

// TrialBalance renders the per-account totals. When the balance carries a
// dated breakdown a second sheet lists it.
func TrialBalance(tb ledger.TrialBalance, r shared.DateRange) []Table {
	flat := Table{
		Title:   title("Neraca Saldo", r),
		Sheet:   "Neraca Saldo",
		Columns: append(accountColumns(), amountColumns("Debit", "Kredit", "Saldo")...),
	}
	for _, b := range tb.Rows {
		flat.AddRow(b.Code, b.Name, TypeLabel(b.Type), b.TotalDebit, b.TotalCredit, b.Total)
	}
	flat.AddSummary(nil, "Total", nil, tb.TotalDebit, tb.TotalCredit, tb.Total)

	tables := []Table{flat}
	if len(tb.ByDate) == 0 {
		return tables
	}

	dated := Table{
		Title: title("Neraca Saldo per Tanggal", r),
		Sheet: "Per Tanggal",
		Columns: append(append([]Column{{Header: "Tanggal", Kind: Date, Width: 14}}, accountColumns()...),
			amountColumns("Debit", "Kredit", "Saldo")...),
	}
	for _, day := range tb.ByDate {
		for _, b := range day.Rows {
			dated.AddRow(day.Date, b.Code, b.Name, TypeLabel(b.Type), b.TotalDebit, b.TotalCredit, b.Total)
		}
		dated.AddSubtotal(day.Date, nil, "Subtotal", nil, day.TotalDebit, day.TotalCredit, day.TotalDebit-day.TotalCredit)
	}
	return append(tables, dated)
}

// IncomeStatement lists revenue then expense accounts followed by the net
// income.
func IncomeStatement(is ledger.IncomeStatement, r shared.DateRange) Table {
	t := Table{
		Title:   title("Laporan Pendapatan dan Beban", r),
		Sheet:   "Pendapatan Beban",
		Columns: append(accountColumns(), amountColumns("Debit", "Kredit", "Saldo")...),
	}

	for _, b := range is.Revenue {
		t.AddRow(b.Code, b.Name, TypeLabel(b.Type), b.TotalDebit, b.TotalCredit, b.Total)
	}
	t.AddSubtotal(nil, "Total Pendapatan", nil, nil, nil, is.TotalRevenue)

	for _, b := range is.Expense {
		t.AddRow(b.Code, b.Name, TypeLabel(b.Type), b.TotalDebit, b.TotalCredit, b.Total)
	}
	t.AddSubtotal(nil, "Total Beban", nil, nil, nil, is.TotalExpense)

	t.AddSummary(nil, "Laba Bersih", nil, nil, nil, is.NetIncome)
	return t
}

// GeneralLedger lists each account's lines with running balances, closing
// every account with a bold total row.
func GeneralLedger(ledgers []ledger.AccountLedger, r shared.DateRange) Table {
	t := Table{
		Title: title("Buku Besar", r),
		Sheet: "Buku Besar",
		Columns: append([]Column{
			{Header: "Kode", Kind: Integer, Width: 10},
			{Header: "Akun", Kind: Text, Width: 30},
			{Header: "Tanggal", Kind: Date, Width: 14},
			{Header: "Jurnal", Kind: Text, Width: 30},
			{Header: "Keterangan", Kind: Text, Width: 30},
		}, amountColumns("Debit", "Kredit", "Saldo Debit", "Saldo Kredit", "Saldo")...),
	}

	var debit, credit int64
	for _, al := range ledgers {
		for _, l := range al.Lines {
			t.AddRow(al.Code, al.Name, dateCell(l.Date), l.JournalName, l.Note,
				l.Debit, l.Credit, l.SaldoDebit, l.SaldoKredit, l.Total)
		}
		t.AddSubtotal(al.Code, al.Name, nil, "Total", nil,
			al.TotalDebit, al.TotalCredit, al.TotalDebit, al.TotalCredit, al.Total)
		debit += al.TotalDebit
		credit += al.TotalCredit
	}
	t.AddSummary(nil, "Total", nil, nil, nil, debit, credit, debit, credit, debit-credit)
	return t
}
