package salary

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
)

const (
	StandardWorkdaysPerMonth = 22
	StandardHoursPerDay      = 8
)

// Configuration holds the compensation parameters of one employee.
// At most one configuration is active per employee.
type Configuration struct {
	EmployeeID    string
	BasicSalary   decimal.Decimal
	HourlyRate    *decimal.Decimal // nil means derived from BasicSalary
	Allowances    Allowances
	Deductions    Deductions
	EffectiveDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// IsDefault marks a configuration synthesized from the default table.
	IsDefault bool
}

type Allowances struct {
	Transport    decimal.Decimal
	Meal         decimal.Decimal
	OvertimeRate decimal.Decimal
	Special      decimal.Decimal
}

type Deductions struct {
	TaxPercent           decimal.Decimal
	ProvidentFundPercent decimal.Decimal
	InsuranceFlat        decimal.Decimal
}

// DerivedHourlyRate is basicSalary / (22 workdays * 8 hours).
func DerivedHourlyRate(basicSalary decimal.Decimal) decimal.Decimal {
	return basicSalary.Div(decimal.NewFromInt(StandardWorkdaysPerMonth * StandardHoursPerDay))
}

// EffectiveHourlyRate returns the explicit hourly rate or the derived default.
func (c Configuration) EffectiveHourlyRate() decimal.Decimal {
	if c.HourlyRate != nil {
		return *c.HourlyRate
	}
	return DerivedHourlyRate(c.BasicSalary)
}

// DefaultTable maps (category, key) to a basic salary. Lecturers are keyed by
// department, staff by position. Fallbacks apply when the key is absent.
type DefaultTable struct {
	Lecturer         map[string]decimal.Decimal
	Staff            map[string]decimal.Decimal
	LecturerFallback decimal.Decimal
	StaffFallback    decimal.Decimal
}

// BasicSalaryFor looks up the default basic salary for emp.
func (t DefaultTable) BasicSalaryFor(emp employee.Employee) decimal.Decimal {
	if emp.Category == employee.CategoryLecturer {
		if amount, ok := t.Lecturer[emp.Department]; ok {
			return amount
		}
		return t.LecturerFallback
	}

	if amount, ok := t.Staff[emp.PositionName()]; ok {
		return amount
	}
	return t.StaffFallback
}

// Synthesize builds the default configuration for emp. It never fails.
func (t DefaultTable) Synthesize(emp employee.Employee, effectiveDate time.Time) Configuration {
	basic := t.BasicSalaryFor(emp)
	hourly := DerivedHourlyRate(basic)
	return Configuration{
		EmployeeID:    emp.ID,
		BasicSalary:   basic,
		HourlyRate:    &hourly,
		EffectiveDate: effectiveDate,
		IsDefault:     true,
	}
}
