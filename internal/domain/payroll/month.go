package payroll

import (
	"fmt"
	"time"

	"github.com/uniadmin/payroll-backend-go/internal/pkg/validator"
)

const monthLayout = "2006-01"

// Month is a calendar month, written as YYYY-MM.
type Month struct {
	year  int
	month time.Month
}

func NewMonth(year int, month time.Month) Month {
	return Month{year: year, month: month}
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

// ParseMonth parses a strict YYYY-MM literal.
func ParseMonth(s string) (Month, error) {
	if !validator.IsValidMonth(s) {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return MonthOf(t), nil
}

func (m Month) Year() int          { return m.year }
func (m Month) Month() time.Month  { return m.month }
func (m Month) IsZero() bool       { return m.year == 0 && m.month == 0 }
func (m Month) String() string     { return m.Start().Format(monthLayout) }
func (m Month) Start() time.Time   { return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC) }
func (m Month) End() time.Time     { return m.Start().AddDate(0, 1, 0) }
func (m Month) Next() Month        { return MonthOf(m.End()) }
func (m Month) Equal(o Month) bool { return m.year == o.year && m.month == o.month }

// Contains compares calendar dates, ignoring time of day and location.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.year && t.Month() == m.month
}

// WorkingDays counts Monday to Friday dates in the month. Holidays are not considered.
func (m Month) WorkingDays() int {
	count := 0
	for d := m.Start(); d.Before(m.End()); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
