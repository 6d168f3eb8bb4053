package order

import "time"

// StatusSummary counts orders per workflow status.
type StatusSummary struct {
	Unpaid     int64 `json:"unpaid"`
	Paid       int64 `json:"paid"`
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Done       int64 `json:"done"`
}

// SummarizeStatuses folds raw per-status counts into a summary.
func SummarizeStatuses(counts map[Status]int64) StatusSummary {
	return StatusSummary{
		Unpaid:     counts[StatusUnpaid],
		Paid:       counts[StatusPaid],
		Processing: counts[StatusProcessing],
		Shipped:    counts[StatusShipped],
		Done:       counts[StatusDone],
	}
}

// MonthTotal is the completed-order volume of one calendar month.
type MonthTotal struct {
	Month             string `json:"month"`
	TotalTransactions int    `json:"totalTransactions"`
	TotalAmount       int64  `json:"totalAmount"`
}

// MonthlyTotals buckets done orders of the given year by creation month.
// The result always has twelve entries, January first.
func MonthlyTotals(txs []*Transaction, year int) []MonthTotal {
	out := make([]MonthTotal, 12)
	for i := range out {
		out[i].Month = time.Month(i + 1).String()
	}
	for _, t := range txs {
		if t == nil || t.Status != StatusDone {
			continue
		}
		created := t.CreatedAt.UTC()
		if created.Year() != year {
			continue
		}
		m := &out[created.Month()-1]
		m.TotalTransactions++
		m.TotalAmount += t.GrandTotal
	}
	return out
}
