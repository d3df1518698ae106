package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/validator"
)

// ========== GENERATION DTOs ==========

type GeneratePayrollRequest struct {
	Month string `json:"month"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerationResponse is the outcome of one generation run. Failures do not
// abort the run; the caller decides what to retry.
type GenerationResponse struct {
	Month    string                  `json:"month"`
	Records  []PayrollRecordResponse `json:"records"`
	Skipped  []PayrollRecordResponse `json:"skipped"`
	Failures []GenerationFailure     `json:"failures"`
}

// ========== RECORD DTOs ==========

type ListPayrollRecordsRequest struct {
	Month      string  `json:"month"`
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *ListPayrollRecordsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}
	if r.Status != nil && !PayrollStatus(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: draft, approved, paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToFilter converts a validated request.
func (r *ListPayrollRecordsRequest) ToFilter() (PayrollFilter, error) {
	month, err := ParseMonth(r.Month)
	if err != nil {
		return PayrollFilter{}, err
	}
	filter := PayrollFilter{Month: month, EmployeeID: r.EmployeeID}
	if r.Status != nil {
		status := PayrollStatus(*r.Status)
		filter.Status = &status
	}
	return filter, nil
}

type PayrollRecordResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	EmployeeCode         *string         `json:"employee_code,omitempty"`
	Month                string          `json:"month"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	HourlyRate           decimal.Decimal `json:"hourly_rate"`
	WorkingDays          int             `json:"working_days"`
	PresentDays          int             `json:"present_days"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	LeaveDays            int             `json:"leave_days"`
	UnpaidLeaveDays      int             `json:"unpaid_leave_days"`
	DailySalary          decimal.Decimal `json:"daily_salary"`
	SalaryForPresentDays decimal.Decimal `json:"salary_for_present_days"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	LeaveDeduction       decimal.Decimal `json:"leave_deduction"`
	TaxRate              decimal.Decimal `json:"tax_rate"`
	TaxDeduction         decimal.Decimal `json:"tax_deduction"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	TotalSalary          decimal.Decimal `json:"total_salary"`
	Status               string          `json:"status"`
	GeneratedAt          time.Time       `json:"generated_at"`
	ApprovedBy           *string         `json:"approved_by,omitempty"`
	ApprovedAt           *time.Time      `json:"approved_at,omitempty"`
	PaidAt               *time.Time      `json:"paid_at,omitempty"`
	SourceAttendanceIDs  []string        `json:"source_attendance_ids"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	sources := r.SourceAttendanceIDs
	if sources == nil {
		sources = []string{}
	}
	return PayrollRecordResponse{
		ID:                   r.ID,
		EmployeeID:           r.EmployeeID,
		EmployeeName:         r.EmployeeName,
		EmployeeCode:         r.EmployeeCode,
		Month:                r.Month.String(),
		BasicSalary:          r.BasicSalary,
		HourlyRate:           r.HourlyRate,
		WorkingDays:          r.WorkingDays,
		PresentDays:          r.PresentDays,
		OvertimeHours:        r.OvertimeHours,
		LeaveDays:            r.LeaveDays,
		UnpaidLeaveDays:      r.UnpaidLeaveDays,
		DailySalary:          r.DailySalary,
		SalaryForPresentDays: r.SalaryForPresentDays,
		OvertimePay:          r.OvertimePay,
		GrossSalary:          r.GrossSalary,
		LeaveDeduction:       r.LeaveDeduction,
		TaxRate:              r.TaxRate,
		TaxDeduction:         r.TaxDeduction,
		TotalDeductions:      r.TotalDeductions,
		TotalSalary:          r.TotalSalary,
		Status:               string(r.Status),
		GeneratedAt:          r.GeneratedAt,
		ApprovedBy:           r.ApprovedBy,
		ApprovedAt:           r.ApprovedAt,
		PaidAt:               r.PaidAt,
		SourceAttendanceIDs:  sources,
	}
}

// ========== SUMMARY DTOs ==========

type PayrollSummaryResponse struct {
	Month            string          `json:"month"`
	TotalEmployees   int             `json:"total_employees"`
	TotalBasicSalary decimal.Decimal `json:"total_basic_salary"`
	TotalOvertimePay decimal.Decimal `json:"total_overtime_pay"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalSalary      decimal.Decimal `json:"total_salary"`
	DraftCount       int             `json:"draft_count"`
	ApprovedCount    int             `json:"approved_count"`
	PaidCount        int             `json:"paid_count"`
}

func NewPayrollSummaryResponse(s PayrollSummary) PayrollSummaryResponse {
	return PayrollSummaryResponse{
		Month:            s.Month.String(),
		TotalEmployees:   s.TotalEmployees,
		TotalBasicSalary: s.TotalBasicSalary,
		TotalOvertimePay: s.TotalOvertimePay,
		TotalDeductions:  s.TotalDeductions,
		TotalSalary:      s.TotalSalary,
		DraftCount:       s.DraftCount,
		ApprovedCount:    s.ApprovedCount,
		PaidCount:        s.PaidCount,
	}
}
