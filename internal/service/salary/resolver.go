package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
)

type resolver struct {
	configRepo salary.ConfigurationRepository
	table      salary.DefaultTable
}

// NewResolver returns a resolver that prefers the stored configuration and
// falls back to table. The fallback is never persisted.
func NewResolver(configRepo salary.ConfigurationRepository, table salary.DefaultTable) salary.Resolver {
	return &resolver{configRepo: configRepo, table: table}
}

func (r *resolver) Resolve(ctx context.Context, emp employee.Employee) (salary.Configuration, error) {
	cfg, err := r.configRepo.GetByEmployeeID(ctx, emp.ID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, salary.ErrSalaryConfigurationNotFound) {
		return salary.Configuration{}, fmt.Errorf("failed to load salary configuration for employee %s: %w", emp.ID, err)
	}

	effective := time.Date(emp.CreatedAt.Year(), emp.CreatedAt.Month(), emp.CreatedAt.Day(), 0, 0, 0, 0, time.UTC)
	return r.table.Synthesize(emp, effective), nil
}
