package salary

import (
	"context"
	"log/slog"

	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
)

type SalaryServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	configRepo   salary.ConfigurationRepository
	resolver     salary.Resolver
	logger       *slog.Logger
}

func NewSalaryService(
	employeeRepo employee.EmployeeRepository,
	configRepo salary.ConfigurationRepository,
	resolver salary.Resolver,
	logger *slog.Logger,
) salary.SalaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalaryServiceImpl{
		employeeRepo: employeeRepo,
		configRepo:   configRepo,
		resolver:     resolver,
		logger:       logger.With("component", "salary"),
	}
}

// GetConfiguration returns the configuration payroll would use, including a
// synthesized default when nothing is stored.
func (s *SalaryServiceImpl) GetConfiguration(ctx context.Context, employeeID string) (salary.ConfigurationResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return salary.ConfigurationResponse{}, err
	}

	cfg, err := s.resolver.Resolve(ctx, emp)
	if err != nil {
		return salary.ConfigurationResponse{}, err
	}

	return salary.NewConfigurationResponse(cfg), nil
}

func (s *SalaryServiceImpl) UpsertConfiguration(ctx context.Context, req salary.UpsertConfigurationRequest) (salary.ConfigurationResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ConfigurationResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return salary.ConfigurationResponse{}, err
	}

	saved, err := s.configRepo.Upsert(ctx, req.ToConfiguration())
	if err != nil {
		return salary.ConfigurationResponse{}, err
	}

	s.logger.Info("salary configuration updated",
		"employee_id", saved.EmployeeID,
		"basic_salary", saved.BasicSalary.String(),
		"effective_date", saved.EffectiveDate.Format("2006-01-02"))

	return salary.NewConfigurationResponse(saved), nil
}
