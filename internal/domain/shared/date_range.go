package shared

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted from clients (MM/DD/YYYY).
// Single-digit month and day are accepted as well.
const DateLayout = "1/2/2006"

// ISODateLayout is the normalized form used in responses and exports.
const ISODateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date parameter is not a calendar date.
type ErrInvalidDate struct {
	Field string
	Value string
}

func (e ErrInvalidDate) Error() string {
	return fmt.Sprintf("%s must be a date in MM/DD/YYYY format, got %q", e.Field, e.Value)
}

// DateRange is an inclusive range of calendar days. A range is only applied
// when both bounds are present; a half-open request behaves like no filter.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange parses optional MM/DD/YYYY bounds. Every non-empty bound must
// parse, even when the other one is missing.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange

	if start != "" {
		t, err := time.ParseInLocation(DateLayout, start, time.UTC)
		if err != nil {
			return DateRange{}, ErrInvalidDate{Field: "startDate", Value: start}
		}
		r.Start = &t
	}
	if end != "" {
		t, err := time.ParseInLocation(DateLayout, end, time.UTC)
		if err != nil {
			return DateRange{}, ErrInvalidDate{Field: "endDate", Value: end}
		}
		r.End = &t
	}

	return r, nil
}

// NewDateRange builds a bounded range from two calendar days.
func NewDateRange(start, end time.Time) DateRange {
	s, e := TruncateDay(start), TruncateDay(end)
	return DateRange{Start: &s, End: &e}
}

// Bounded reports whether the range filters anything.
func (r DateRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// Contains reports whether t falls on a day inside the range. An unbounded
// range contains every instant.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Bounded() {
		return true
	}
	from, until := r.Window()
	return !t.Before(from) && t.Before(until)
}

// Window returns the half-open instant interval [start day, day after end)
// covering the range. Only meaningful when Bounded is true.
func (r DateRange) Window() (time.Time, time.Time) {
	return TruncateDay(*r.Start), TruncateDay(*r.End).AddDate(0, 0, 1)
}

// String renders the range for logs and report titles.
func (r DateRange) String() string {
	if !r.Bounded() {
		return "all dates"
	}
	return r.Start.Format(ISODateLayout) + " to " + r.End.Format(ISODateLayout)
}

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
