package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusDraft, PayrollStatusApproved, PayrollStatusPaid:
		return true
	}
	return false
}

// CanTransitionTo encodes draft -> approved -> paid. Nothing leaves paid.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	switch s {
	case PayrollStatusDraft:
		return next == PayrollStatusApproved
	case PayrollStatusApproved:
		return next == PayrollStatusPaid
	}
	return false
}

// IsFinalized reports whether an administrator has acted on the record.
func (s PayrollStatus) IsFinalized() bool {
	return s == PayrollStatusApproved || s == PayrollStatusPaid
}

// PayrollRecord is the monthly payroll outcome of one employee. It is unique per
// (EmployeeID, Month). Financial fields are a snapshot of the latest generation.
type PayrollRecord struct {
	ID                   string
	EmployeeID           string
	Month                Month
	BasicSalary          decimal.Decimal
	HourlyRate           decimal.Decimal
	WorkingDays          int
	PresentDays          int
	OvertimeHours        decimal.Decimal
	LeaveDays            int
	UnpaidLeaveDays      int
	DailySalary          decimal.Decimal
	SalaryForPresentDays decimal.Decimal
	OvertimePay          decimal.Decimal
	GrossSalary          decimal.Decimal
	LeaveDeduction       decimal.Decimal
	TaxRate              decimal.Decimal
	TaxDeduction         decimal.Decimal
	TotalDeductions      decimal.Decimal
	TotalSalary          decimal.Decimal
	Status               PayrollStatus
	GeneratedAt          time.Time
	ApprovedBy           *string
	ApprovedAt           *time.Time
	PaidAt               *time.Time
	SourceAttendanceIDs  []string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// StatusTransition is a compare-and-set on a record's status.
type StatusTransition struct {
	From  PayrollStatus
	To    PayrollStatus
	Actor *string
	At    time.Time
}

func ApproveTransition(approvedBy string, at time.Time) StatusTransition {
	return StatusTransition{From: PayrollStatusDraft, To: PayrollStatusApproved, Actor: &approvedBy, At: at}
}

func MarkPaidTransition(at time.Time) StatusTransition {
	return StatusTransition{From: PayrollStatusApproved, To: PayrollStatusPaid, At: at}
}

// Apply stamps the transition onto rec. The caller must have checked rec.Status == t.From.
func (t StatusTransition) Apply(rec *PayrollRecord) {
	rec.Status = t.To
	at := t.At
	switch t.To {
	case PayrollStatusApproved:
		rec.ApprovedBy = t.Actor
		rec.ApprovedAt = &at
	case PayrollStatusPaid:
		rec.PaidAt = &at
	}
}

// Rejection builds the error returned when a record is not in t.From.
func (t StatusTransition) Rejection(current PayrollStatus) error {
	return fmt.Errorf("%w: cannot move %s record to %s", ErrInvalidStatusTransition, current, t.To)
}

// ApplyComputed copies the computed subset of src onto dst, leaving identity
// and lifecycle fields untouched.
func ApplyComputed(dst *PayrollRecord, src PayrollRecord) {
	dst.BasicSalary = src.BasicSalary
	dst.HourlyRate = src.HourlyRate
	dst.WorkingDays = src.WorkingDays
	dst.PresentDays = src.PresentDays
	dst.OvertimeHours = src.OvertimeHours
	dst.LeaveDays = src.LeaveDays
	dst.UnpaidLeaveDays = src.UnpaidLeaveDays
	dst.DailySalary = src.DailySalary
	dst.SalaryForPresentDays = src.SalaryForPresentDays
	dst.OvertimePay = src.OvertimePay
	dst.GrossSalary = src.GrossSalary
	dst.LeaveDeduction = src.LeaveDeduction
	dst.TaxRate = src.TaxRate
	dst.TaxDeduction = src.TaxDeduction
	dst.TotalDeductions = src.TotalDeductions
	dst.TotalSalary = src.TotalSalary
	dst.GeneratedAt = src.GeneratedAt
	dst.SourceAttendanceIDs = src.SourceAttendanceIDs
}

// GenerationFailure describes one employee whose record could not be produced.
type GenerationFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Stage        string `json:"stage"`
	Error        string `json:"error"`
}

// Stages at which a per-employee generation can fail.
const (
	StageConfiguration = "configuration"
	StageAttendance    = "attendance"
	StageCompute       = "compute"
	StageStore         = "store"
)

// PayrollSummary aggregates one month of records.
type PayrollSummary struct {
	Month            Month
	TotalEmployees   int
	TotalBasicSalary decimal.Decimal
	TotalOvertimePay decimal.Decimal
	TotalDeductions  decimal.Decimal
	TotalSalary      decimal.Decimal
	DraftCount       int
	ApprovedCount    int
	PaidCount        int
}

type PayrollFilter struct {
	Month      Month
	Status     *PayrollStatus
	EmployeeID *string
}
