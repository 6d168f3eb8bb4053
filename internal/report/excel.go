package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks produced by ExcelWriter.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// ExcelWriter writes tables into an xlsx workbook, one sheet per table.
type ExcelWriter struct{}

func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

type styles struct {
	title  int
	header int
	plain  map[ColumnKind]int
	bold   map[ColumnKind]int
}

// Write renders tables into a workbook and streams it to w.
func (x *ExcelWriter) Write(w io.Writer, tables ...Table) error {
	if len(tables) == 0 {
		return errors.New("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	for i, t := range tables {
		sheet := t.Sheet
		if sheet == "" {
			sheet = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
		}

		if err := writeTable(f, sheet, t, st); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	currencyFmt := currencyFormat
	base := map[ColumnKind]*excelize.Style{
		Text:     {Border: border, Alignment: &excelize.Alignment{Vertical: "center"}},
		Integer:  {Border: border, NumFmt: 1},
		Date:     {Border: border, NumFmt: 14},
		Currency: {Border: border, CustomNumFmt: &currencyFmt},
	}

	st := &styles{
		plain: make(map[ColumnKind]int, len(base)),
		bold:  make(map[ColumnKind]int, len(base)),
	}
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for kind, s := range base {
		id, err := f.NewStyle(s)
		if err != nil {
			return nil, fmt.Errorf("failed to create cell style: %w", err)
		}
		bold := *s
		bold.Font = &excelize.Font{Bold: true}
		boldID, err := f.NewStyle(&bold)
		if err != nil {
			return nil, fmt.Errorf("failed to create summary style: %w", err)
		}
		st.plain[kind] = id
		st.bold[kind] = boldID
	}
	return st, nil
}

func (s *styles) cell(kind ColumnKind, emphasis bool) int {
	if emphasis {
		return s.bold[kind]
	}
	return s.plain[kind]
}

func writeTable(f *excelize.File, sheet string, t Table, st *styles) error {
	row := 1
	if t.Title != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sheet, cell, t.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.title); err != nil {
			return err
		}
		row += 2
	}

	for i, c := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, c.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.header); err != nil {
			return err
		}

		width := c.Width
		if width == 0 {
			width = 15
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	row++

	for _, r := range t.Rows {
		if err := writeRow(f, sheet, row, t.Columns, r, st); err != nil {
			return err
		}
		row++
	}

	if len(t.Summary) > 0 {
		row++
	}
	for _, r := range t.Summary {
		if err := writeRow(f, sheet, row, t.Columns, r, st); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, columns []Column, r Row, st *styles) error {
	for i, v := range r.Cells {
		if i >= len(columns) {
			break
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, cellValue(columns[i].Kind, v)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.cell(columns[i].Kind, r.Emphasis)); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(kind ColumnKind, v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if kind == Date {
			return val
		}
		return val.Format("01/02/2006")
	case *int:
		if val == nil {
			return ""
		}
		return *val
	default:
		return v
	}
}
