package payroll

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniadmin/payroll-backend-go/internal/domain/attendance"
	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
)

const (
	// Paid leave days granted per month before leave is deducted.
	paidLeaveAllowance = 2
	moneyPlaces        = 2
)

var (
	overtimeMultiplier = decimal.RequireFromString("1.5")

	// Tax is a step on gross, not a marginal bracket.
	upperTaxThreshold = decimal.NewFromInt(100000)
	lowerTaxThreshold = decimal.NewFromInt(50000)
	upperTaxRate      = decimal.RequireFromString("0.10")
	lowerTaxRate      = decimal.RequireFromString("0.05")
)

// Calculator turns one employee's configuration and attendance for a month
// into a draft payroll record. It has no state and performs no I/O.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// TaxRateFor returns the tax rate applied to gross.
func TaxRateFor(gross decimal.Decimal) decimal.Decimal {
	switch {
	case gross.GreaterThan(upperTaxThreshold):
		return upperTaxRate
	case gross.GreaterThan(lowerTaxThreshold):
		return lowerTaxRate
	default:
		return decimal.Zero
	}
}

// ComputeMonth computes the payroll record of emp for month. Events outside the
// month or belonging to another employee are ignored, and when two events share
// a day the later one in events wins. generatedAt is only stamped on the record.
func (c *Calculator) ComputeMonth(
	emp employee.Employee,
	cfg salary.Configuration,
	events []attendance.Event,
	month payroll.Month,
	generatedAt time.Time,
) (payroll.PayrollRecord, error) {
	if month.IsZero() {
		return payroll.PayrollRecord{}, payroll.ErrInvalidMonth
	}
	if cfg.BasicSalary.IsNegative() {
		return payroll.PayrollRecord{}, fmt.Errorf("%w: %s", salary.ErrNegativeBasicSalary, cfg.BasicSalary)
	}
	hourlyRate := cfg.EffectiveHourlyRate()
	if hourlyRate.IsNegative() {
		return payroll.PayrollRecord{}, fmt.Errorf("%w: %s", salary.ErrNegativeHourlyRate, hourlyRate)
	}

	days, err := eventsByDay(emp.ID, events, month)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	workingDays := month.WorkingDays()
	presentDays := 0
	overtimeHours := decimal.Zero
	sourceIDs := make([]string, 0, len(days))
	for _, e := range days {
		if e.Status.CountsAsPresent() {
			presentDays++
		}
		overtimeHours = overtimeHours.Add(e.OvertimeHours)
		if e.ID != "" {
			sourceIDs = append(sourceIDs, e.ID)
		}
	}

	if workingDays == 0 && presentDays > 0 {
		return payroll.PayrollRecord{}, payroll.ErrNoWorkingDays
	}

	leaveDays := max(0, workingDays-presentDays)
	unpaidLeaveDays := max(0, leaveDays-paidLeaveAllowance)

	basic := cfg.BasicSalary
	dailySalary := decimal.Zero
	salaryForPresentDays := decimal.Zero
	leaveDeduction := decimal.Zero
	if workingDays > 0 {
		// Multiply before dividing so whole-month figures stay exact.
		wd := decimal.NewFromInt(int64(workingDays))
		dailySalary = basic.Div(wd)
		salaryForPresentDays = basic.Mul(decimal.NewFromInt(int64(presentDays))).Div(wd)
		leaveDeduction = basic.Mul(decimal.NewFromInt(int64(unpaidLeaveDays))).Div(wd)
	}

	overtimePay := overtimeHours.Mul(hourlyRate).Mul(overtimeMultiplier)
	gross := salaryForPresentDays.Add(overtimePay)
	taxRate := TaxRateFor(gross)
	taxDeduction := gross.Mul(taxRate)
	totalDeductions := leaveDeduction.Add(taxDeduction)

	total := gross.Sub(totalDeductions)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return payroll.PayrollRecord{
		EmployeeID:           emp.ID,
		Month:                month,
		BasicSalary:          basic.Round(moneyPlaces),
		HourlyRate:           hourlyRate.Round(moneyPlaces),
		WorkingDays:          workingDays,
		PresentDays:          presentDays,
		OvertimeHours:        overtimeHours.Round(moneyPlaces),
		LeaveDays:            leaveDays,
		UnpaidLeaveDays:      unpaidLeaveDays,
		DailySalary:          dailySalary.Round(moneyPlaces),
		SalaryForPresentDays: salaryForPresentDays.Round(moneyPlaces),
		OvertimePay:          overtimePay.Round(moneyPlaces),
		GrossSalary:          gross.Round(moneyPlaces),
		LeaveDeduction:       leaveDeduction.Round(moneyPlaces),
		TaxRate:              taxRate,
		TaxDeduction:         taxDeduction.Round(moneyPlaces),
		TotalDeductions:      totalDeductions.Round(moneyPlaces),
		TotalSalary:          total.Round(moneyPlaces),
		Status:               payroll.PayrollStatusDraft,
		GeneratedAt:          generatedAt,
		SourceAttendanceIDs:  sourceIDs,
		EmployeeName:         &emp.FullName,
		EmployeeCode:         &emp.DisplayCode,
	}, nil
}

// eventsByDay keeps one event per calendar day of month, ordered by date.
func eventsByDay(employeeID string, events []attendance.Event, month payroll.Month) ([]attendance.Event, error) {
	byDay := make(map[string]attendance.Event, len(events))
	for _, e := range events {
		if e.EmployeeID != "" && e.EmployeeID != employeeID {
			continue
		}
		if !month.Contains(e.Date) {
			continue
		}
		if !e.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q on %s", attendance.ErrInvalidStatus, e.Status, e.DayKey())
		}
		if e.OvertimeHours.IsNegative() {
			return nil, fmt.Errorf("%w: %s on %s", attendance.ErrNegativeOvertime, e.OvertimeHours, e.DayKey())
		}
		byDay[e.DayKey()] = e
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]attendance.Event, len(keys))
	for i, k := range keys {
		days[i] = byDay[k]
	}
	return days, nil
}
