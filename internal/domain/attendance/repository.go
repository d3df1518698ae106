package attendance

import (
	"context"
	"time"
)

// Ledger is the attendance event source. Payroll only reads from it; Upsert is
// the contract of the attendance-marking collaborator.
type Ledger interface {
	// GetEvents returns the employee's events with from <= date < to, ordered by date.
	GetEvents(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)
	Upsert(ctx context.Context, event Event) (Event, error)
}
