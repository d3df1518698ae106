package salary

import (
	"context"

	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
)

// Resolver returns the configuration payroll should use for an employee.
// It never writes; a synthesized default is returned, not stored.
type Resolver interface {
	Resolve(ctx context.Context, emp employee.Employee) (Configuration, error)
}

type SalaryService interface {
	GetConfiguration(ctx context.Context, employeeID string) (ConfigurationResponse, error)
	UpsertConfiguration(ctx context.Context, req UpsertConfigurationRequest) (ConfigurationResponse, error)
}
