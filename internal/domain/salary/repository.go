package salary

import "context"

type ConfigurationRepository interface {
	// GetByEmployeeID returns ErrSalaryConfigurationNotFound when nothing is stored.
	GetByEmployeeID(ctx context.Context, employeeID string) (Configuration, error)
	// Upsert replaces the single active configuration of the employee.
	Upsert(ctx context.Context, cfg Configuration) (Configuration, error)
}
