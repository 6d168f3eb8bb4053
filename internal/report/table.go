// Package report renders ledger results as spreadsheet tables.
package report

import (
	"time"
)

// ColumnKind selects how a column's cells are written and formatted.
type ColumnKind int

const (
	Text ColumnKind = iota
	Integer
	Date
	Currency
)

// Column describes one table column
type Column struct {
	Header string
	Kind   ColumnKind
	Width  float64
}

// Row is one line of a table. Emphasized rows are written in bold.
type Row struct {
	Cells    []any
	Emphasis bool
}

// Table is a plain, library independent description of one sheet.
type Table struct {
	Title   string
	Sheet   string
	Columns []Column
	Rows    []Row
	Summary []Row
}

// AddRow appends a data row.
func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, Row{Cells: cells})
}

// AddSubtotal appends a bold row inside the data block.
func (t *Table) AddSubtotal(cells ...any) {
	t.Rows = append(t.Rows, Row{Cells: cells, Emphasis: true})
}

// AddSummary appends a bold row after the data block.
func (t *Table) AddSummary(cells ...any) {
	t.Summary = append(t.Summary, Row{Cells: cells, Emphasis: true})
}

// DataRows counts the non emphasized rows.
func (t *Table) DataRows() int {
	n := 0
	for _, r := range t.Rows {
		if !r.Emphasis {
			n++
		}
	}
	return n
}

func dateCell(t time.Time) any {
	if t.IsZero() {
		return ""
	}
	return t
}
