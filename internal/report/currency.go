package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const currencyPrefix = "Rp"

// currencyFormat is the custom number format applied to Currency cells.
const currencyFormat = `"Rp" #,##0.00;"Rp" -#,##0.00`

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatCurrency renders a rupiah amount with Indonesian grouping and two
// decimals, e.g. "Rp 1.234,00".
func FormatCurrency(amount int64) string {
	return idPrinter.Sprintf("%s %v", currencyPrefix, number.Decimal(amount, number.Scale(2)))
}
