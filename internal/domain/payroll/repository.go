package payroll

import "context"

// PayrollRepository is the payroll store, keyed by (employee, month).
type PayrollRepository interface {
	// UpsertComputed inserts a draft record or merges the computed fields into the
	// existing one without touching status, approval or payment fields. When
	// lockFinalized is set, approved and paid records are left as they are and
	// applied is false.
	UpsertComputed(ctx context.Context, record PayrollRecord, lockFinalized bool) (stored PayrollRecord, applied bool, err error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeeMonth(ctx context.Context, employeeID string, month Month) (PayrollRecord, error)
	ListByMonth(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	// UpdateStatus applies t only if the record is currently in t.From.
	UpdateStatus(ctx context.Context, id string, t StatusTransition) (PayrollRecord, error)
	GetSummary(ctx context.Context, month Month) (PayrollSummary, error)
}
