package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is one employee's attendance for one calendar day. The ledger keeps
// at most one event per (EmployeeID, Date); a later write for the same day wins.
type Event struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Status        Status
	OvertimeHours decimal.Decimal
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// CountsAsPresent reports whether the day is a present day for payroll.
// Half days are not counted.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// DayKey is the calendar day of the event in its own location, as YYYY-MM-DD.
func (e Event) DayKey() string {
	return e.Date.Format("2006-01-02")
}
