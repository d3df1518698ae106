package employee

import "context"

// EmployeeRepository is the read side of the employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns active employees, optionally restricted to one category,
	// ordered by display code.
	ListActive(ctx context.Context, category *Category) ([]Employee, error)
}
