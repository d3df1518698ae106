package fixtures

import (
	"github.com/shopspring/decimal"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
)

// ==========================================
// DEFAULT SALARY TABLE
// ==========================================

// DefaultSalaryTable returns the basic salaries applied to employees without a
// stored configuration. Each call returns a fresh table.
func DefaultSalaryTable() salary.DefaultTable {
	return salary.DefaultTable{
		// Lecturers by department
		Lecturer: map[string]decimal.Decimal{
			"Computer Science":        decimal.NewFromInt(130000),
			"Electrical Engineering":  decimal.NewFromInt(125000),
			"Mathematics":             decimal.NewFromInt(110000),
			"Physics":                 decimal.NewFromInt(110000),
			"Business Administration": decimal.NewFromInt(105000),
			"English":                 decimal.NewFromInt(95000),
		},
		// Staff by position
		Staff: map[string]decimal.Decimal{
			"Coordinator":   decimal.NewFromInt(80000),
			"Accountant":    decimal.NewFromInt(75000),
			"Administrator": decimal.NewFromInt(70000),
			"Librarian":     decimal.NewFromInt(60000),
			"Technician":    decimal.NewFromInt(55000),
			"Clerk":         decimal.NewFromInt(45000),
		},
		LecturerFallback: decimal.NewFromInt(100000),
		StaffFallback:    decimal.NewFromInt(50000),
	}
}
