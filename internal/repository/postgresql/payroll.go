package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// payrollRecordSelect reads a record aliased p joined with its employee e.
const payrollRecordSelect = `
	p.id, p.employee_id, p.month, p.basic_salary, p.hourly_rate,
	p.working_days, p.present_days, p.overtime_hours, p.leave_days, p.unpaid_leave_days,
	p.daily_salary, p.salary_for_present_days, p.overtime_pay, p.gross_salary,
	p.leave_deduction, p.tax_rate, p.tax_deduction, p.total_deductions, p.total_salary,
	p.status, p.generated_at, p.approved_by, p.approved_at, p.paid_at,
	p.source_attendance_ids, p.created_at, p.updated_at,
	e.full_name, e.display_code`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var (
		rec   payroll.PayrollRecord
		month string
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &month, &rec.BasicSalary, &rec.HourlyRate,
		&rec.WorkingDays, &rec.PresentDays, &rec.OvertimeHours, &rec.LeaveDays, &rec.UnpaidLeaveDays,
		&rec.DailySalary, &rec.SalaryForPresentDays, &rec.OvertimePay, &rec.GrossSalary,
		&rec.LeaveDeduction, &rec.TaxRate, &rec.TaxDeduction, &rec.TotalDeductions, &rec.TotalSalary,
		&rec.Status, &rec.GeneratedAt, &rec.ApprovedBy, &rec.ApprovedAt, &rec.PaidAt,
		&rec.SourceAttendanceIDs, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	rec.Month, err = payroll.ParseMonth(strings.TrimSpace(month))
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("stored payroll month: %w", err)
	}
	return rec, nil
}

// UpsertComputed writes only the computed columns on conflict. Status, approval
// and payment columns keep whatever an administrator set.
func (r *payrollRepositoryImpl) UpsertComputed(ctx context.Context, rec payroll.PayrollRecord, lockFinalized bool) (payroll.PayrollRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	sources := rec.SourceAttendanceIDs
	if sources == nil {
		sources = []string{}
	}

	query := `
		WITH upserted AS (
			INSERT INTO payroll_records (
				id, employee_id, month, basic_salary, hourly_rate,
				working_days, present_days, overtime_hours, leave_days, unpaid_leave_days,
				daily_salary, salary_for_present_days, overtime_pay, gross_salary,
				leave_deduction, tax_rate, tax_deduction, total_deductions, total_salary,
				status, generated_at, source_attendance_ids
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
				$12, $13, $14, $15, $16, $17, $18, $19, 'draft', $20, $21
			)
			ON CONFLICT (employee_id, month) DO UPDATE SET
				basic_salary = EXCLUDED.basic_salary,
				hourly_rate = EXCLUDED.hourly_rate,
				working_days = EXCLUDED.working_days,
				present_days = EXCLUDED.present_days,
				overtime_hours = EXCLUDED.overtime_hours,
				leave_days = EXCLUDED.leave_days,
				unpaid_leave_days = EXCLUDED.unpaid_leave_days,
				daily_salary = EXCLUDED.daily_salary,
				salary_for_present_days = EXCLUDED.salary_for_present_days,
				overtime_pay = EXCLUDED.overtime_pay,
				gross_salary = EXCLUDED.gross_salary,
				leave_deduction = EXCLUDED.leave_deduction,
				tax_rate = EXCLUDED.tax_rate,
				tax_deduction = EXCLUDED.tax_deduction,
				total_deductions = EXCLUDED.total_deductions,
				total_salary = EXCLUDED.total_salary,
				generated_at = EXCLUDED.generated_at,
				source_attendance_ids = EXCLUDED.source_attendance_ids,
				updated_at = NOW()
			WHERE $22::boolean = FALSE OR payroll_records.status = 'draft'
			RETURNING *
		)
		SELECT ` + payrollRecordSelect + `
		FROM upserted p
		JOIN employees e ON e.id = p.employee_id
	`

	stored, err := scanPayrollRecord(q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), rec.EmployeeID, rec.Month.String(), rec.BasicSalary, rec.HourlyRate,
		rec.WorkingDays, rec.PresentDays, rec.OvertimeHours, rec.LeaveDays, rec.UnpaidLeaveDays,
		rec.DailySalary, rec.SalaryForPresentDays, rec.OvertimePay, rec.GrossSalary,
		rec.LeaveDeduction, rec.TaxRate, rec.TaxDeduction, rec.TotalDeductions, rec.TotalSalary,
		rec.GeneratedAt, sources, lockFinalized,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollRecord{}, false, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	// The conflict guard refused the update: the record is finalized and locked.
	existing, err := r.GetByEmployeeMonth(ctx, rec.EmployeeID, rec.Month)
	if err != nil {
		return payroll.PayrollRecord{}, false, err
	}
	return existing, false, nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordSelect + `
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by id: %w", err)
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID string, month payroll.Month) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollRecordSelect + `
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.month = $2
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by employee and month: %w", err)
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) ListByMonth(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"p.month = $1"}
	args := []interface{}{filter.Month.String()}
	argIdx := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIdx))
		args = append(args, string(*filter.Status))
		argIdx++
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
	}

	query := `
		SELECT ` + payrollRecordSelect + `
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.display_code, p.employee_id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

// UpdateStatus is a compare-and-set on status. Concurrent transitions on the
// same record cannot both succeed.
func (r *payrollRepositoryImpl) UpdateStatus(ctx context.Context, id string, t payroll.StatusTransition) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE payroll_records SET
				status = $3::varchar,
				approved_by = CASE WHEN $3::varchar = 'approved' THEN $4::varchar ELSE approved_by END,
				approved_at = CASE WHEN $3::varchar = 'approved' THEN $5::timestamptz ELSE approved_at END,
				paid_at = CASE WHEN $3::varchar = 'paid' THEN $5::timestamptz ELSE paid_at END,
				updated_at = NOW()
			WHERE id = $1 AND status = $2::varchar
			RETURNING *
		)
		SELECT ` + payrollRecordSelect + `
		FROM updated p
		JOIN employees e ON e.id = p.employee_id
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, string(t.From), string(t.To), t.Actor, t.At))
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	return payroll.PayrollRecord{}, t.Rejection(current.Status)
}

func (r *payrollRepositoryImpl) GetSummary(ctx context.Context, month payroll.Month) (payroll.PayrollSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM(overtime_pay), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(total_salary), 0),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'paid')
		FROM payroll_records
		WHERE month = $1
	`

	s := payroll.PayrollSummary{Month: month}
	err := q.QueryRow(ctx, query, month.String()).Scan(
		&s.TotalEmployees, &s.TotalBasicSalary, &s.TotalOvertimePay, &s.TotalDeductions, &s.TotalSalary,
		&s.DraftCount, &s.ApprovedCount, &s.PaidCount,
	)
	if err != nil {
		return payroll.PayrollSummary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	return s, nil
}
