// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/loan-prepay/pkg/constants"
)

const (
	// DateTimeLayout is the month-granular layout used for period labels.
	DateTimeLayout = constants.DateTimeLayout

	// DateLayout is the day-granular layout accepted for input dates.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate accepts either YYYY-MM-DD or YYYY-MM. An empty string yields the
// zero time, which callers treat as an absent date.
func ParseDate(date string) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateLayout, trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateTimeLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s or %s", date, DateLayout, DateTimeLayout)
	}
	return t, nil
}

// MonthsBetween returns the number of whole months elapsed from start to end.
// A partial trailing month does not count, so 2024-01-15 to 2024-02-14 is 0
// and 2024-01-15 to 2024-02-15 is 1. The result is negative when end precedes
// start.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return -MonthsBetween(end, start)
	}
	months := (end.Year()-start.Year())*constants.MonthsPerYear + int(end.Month()-start.Month())
	if months > 0 && end.Day() < start.Day() && end.Day() < daysIn(end) {
		months--
	}
	return months
}

// AddMonths moves t by the given number of calendar months, anchored on the
// first of the month so that a 31st never spills into the following month.
func AddMonths(t time.Time, months int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// PeriodCalendar maps calendar dates onto 1-based repayment periods.
type PeriodCalendar interface {
	// PeriodIndex returns the period in which date falls when period 1 begins
	// at first. Values below 1 are before the loan starts.
	PeriodIndex(first, date time.Time) int

	// Label names period index. A zero first date produces ordinal labels.
	Label(first time.Time, index int) string
}

// MonthlyCalendar is the PeriodCalendar for monthly repayment periods.
type MonthlyCalendar struct{}

// PeriodIndex implements PeriodCalendar.
func (MonthlyCalendar) PeriodIndex(first, date time.Time) int {
	return MonthsBetween(first, date) + 1
}

// Label implements PeriodCalendar.
func (MonthlyCalendar) Label(first time.Time, index int) string {
	if first.IsZero() {
		return strconv.Itoa(index)
	}
	return AddMonths(first, index-1).Format(DateTimeLayout)
}
