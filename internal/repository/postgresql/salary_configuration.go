package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/database"
)

type salaryConfigurationRepositoryImpl struct {
	db *database.DB
}

func NewSalaryConfigurationRepository(db *database.DB) salary.ConfigurationRepository {
	return &salaryConfigurationRepositoryImpl{db: db}
}

const salaryConfigurationColumns = `
	employee_id, basic_salary, hourly_rate,
	transport_allowance, meal_allowance, overtime_rate_allowance, special_allowance,
	tax_percent, provident_fund_percent, insurance_flat,
	effective_date, created_at, updated_at`

func scanSalaryConfiguration(row pgx.Row) (salary.Configuration, error) {
	var c salary.Configuration
	err := row.Scan(
		&c.EmployeeID, &c.BasicSalary, &c.HourlyRate,
		&c.Allowances.Transport, &c.Allowances.Meal, &c.Allowances.OvertimeRate, &c.Allowances.Special,
		&c.Deductions.TaxPercent, &c.Deductions.ProvidentFundPercent, &c.Deductions.InsuranceFlat,
		&c.EffectiveDate, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *salaryConfigurationRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (salary.Configuration, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryConfigurationColumns + ` FROM salary_configurations WHERE employee_id = $1`

	c, err := scanSalaryConfiguration(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Configuration{}, salary.ErrSalaryConfigurationNotFound
		}
		return salary.Configuration{}, fmt.Errorf("failed to get salary configuration: %w", err)
	}
	return c, nil
}

func (r *salaryConfigurationRepositoryImpl) Upsert(ctx context.Context, cfg salary.Configuration) (salary.Configuration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_configurations (
			employee_id, basic_salary, hourly_rate,
			transport_allowance, meal_allowance, overtime_rate_allowance, special_allowance,
			tax_percent, provident_fund_percent, insurance_flat, effective_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			hourly_rate = EXCLUDED.hourly_rate,
			transport_allowance = EXCLUDED.transport_allowance,
			meal_allowance = EXCLUDED.meal_allowance,
			overtime_rate_allowance = EXCLUDED.overtime_rate_allowance,
			special_allowance = EXCLUDED.special_allowance,
			tax_percent = EXCLUDED.tax_percent,
			provident_fund_percent = EXCLUDED.provident_fund_percent,
			insurance_flat = EXCLUDED.insurance_flat,
			effective_date = EXCLUDED.effective_date,
			updated_at = NOW()
		RETURNING ` + salaryConfigurationColumns

	saved, err := scanSalaryConfiguration(q.QueryRow(ctx, query,
		cfg.EmployeeID, cfg.BasicSalary, cfg.HourlyRate,
		cfg.Allowances.Transport, cfg.Allowances.Meal, cfg.Allowances.OvertimeRate, cfg.Allowances.Special,
		cfg.Deductions.TaxPercent, cfg.Deductions.ProvidentFundPercent, cfg.Deductions.InsuranceFlat,
		cfg.EffectiveDate,
	))
	if err != nil {
		return salary.Configuration{}, fmt.Errorf("failed to upsert salary configuration: %w", err)
	}
	return saved, nil
}
