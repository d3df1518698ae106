package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniadmin/payroll-backend-go/internal/domain/attendance"
	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
)

var fixedNow = time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func lecturer(id string) employee.Employee {
	return employee.Employee{
		ID:          id,
		DisplayCode: "LEC-" + id,
		FullName:    "Lecturer " + id,
		Category:    employee.CategoryLecturer,
		Department:  "Computer Science",
		IsActive:    true,
	}
}

func configWithBasic(basic string) salary.Configuration {
	return salary.Configuration{BasicSalary: dec(basic)}
}

// weekdayEvents returns one event per weekday of month, in order, up to n.
func weekdayEvents(employeeID string, month payroll.Month, n int, status attendance.Status) []attendance.Event {
	var events []attendance.Event
	for d := month.Start(); d.Before(month.End()) && len(events) < n; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		events = append(events, attendance.Event{
			ID:         employeeID + "-" + d.Format("0102"),
			EmployeeID: employeeID,
			Date:       d,
			Status:     status,
		})
	}
	return events
}

func mustMonth(t *testing.T, s string) payroll.Month {
	t.Helper()
	m, err := payroll.ParseMonth(s)
	require.NoError(t, err)
	return m
}

func TestCalculator_EndToEndExample(t *testing.T) {
	month := mustMonth(t, "2024-04")
	require.Equal(t, 22, month.WorkingDays())

	emp := lecturer("e1")
	events := weekdayEvents(emp.ID, month, 20, attendance.StatusPresent)

	rec, err := NewCalculator().ComputeMonth(emp, configWithBasic("130000"), events, month, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 22, rec.WorkingDays)
	assert.Equal(t, 20, rec.PresentDays)
	assert.Equal(t, 2, rec.LeaveDays)
	assert.Equal(t, 0, rec.UnpaidLeaveDays)
	assertDecimal(t, "5909.09", rec.DailySalary, "daily salary")
	assertDecimal(t, "118181.82", rec.SalaryForPresentDays, "salary for present days")
	assertDecimal(t, "0", rec.OvertimePay, "overtime pay")
	assertDecimal(t, "118181.82", rec.GrossSalary, "gross")
	assertDecimal(t, "0.10", rec.TaxRate, "tax rate")
	assertDecimal(t, "11818.18", rec.TaxDeduction, "tax")
	assertDecimal(t, "0", rec.LeaveDeduction, "leave deduction")
	assertDecimal(t, "11818.18", rec.TotalDeductions, "total deductions")
	assertDecimal(t, "106363.64", rec.TotalSalary, "total salary")
	assert.Equal(t, payroll.PayrollStatusDraft, rec.Status)
	assert.Equal(t, fixedNow, rec.GeneratedAt)
	assert.Len(t, rec.SourceAttendanceIDs, 20)
}

func TestCalculator_TaxCliff(t *testing.T) {
	// April 2024 has 22 working days; full attendance makes gross equal basic.
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	full := weekdayEvents(emp.ID, month, 22, attendance.StatusPresent)

	tests := []struct {
		basic   string
		rate    string
		tax     string
		comment string
	}{
		{"100000.01", "0.10", "10000.00", "just above the upper threshold"},
		{"100000", "0.05", "5000.00", "upper threshold itself is not in the 10% step"},
		{"50000.01", "0.05", "2500.00", "just above the lower threshold"},
		{"50000", "0", "0", "lower threshold itself is untaxed"},
		{"0", "0", "0", "zero salary"},
	}

	for _, tt := range tests {
		t.Run(tt.basic, func(t *testing.T) {
			rec, err := NewCalculator().ComputeMonth(emp, configWithBasic(tt.basic), full, month, fixedNow)
			require.NoError(t, err)
			assertDecimal(t, tt.basic, rec.GrossSalary, "gross")
			assertDecimal(t, tt.rate, rec.TaxRate, tt.comment)
			assertDecimal(t, tt.tax, rec.TaxDeduction, tt.comment)
		})
	}
}

func TestTaxRateFor_ComparesUnroundedGross(t *testing.T) {
	assertDecimal(t, "0.05", TaxRateFor(dec("100000")), "exact threshold")
	assertDecimal(t, "0.10", TaxRateFor(dec("100000.001")), "fraction above threshold")
}

func TestCalculator_WorkingDaysBoundaries(t *testing.T) {
	tests := []struct {
		month string
		want  int
	}{
		{"2024-01", 23},
		{"2024-02", 21}, // leap year
		{"2024-03", 21}, // ends on a Sunday
		{"2024-04", 22},
		{"2024-06", 20}, // starts on a Saturday, ends on a Sunday
		{"2024-09", 21}, // starts on a Sunday
		{"2025-02", 20},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			rec, err := NewCalculator().ComputeMonth(lecturer("e1"), configWithBasic("1000"), nil, mustMonth(t, tt.month), fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.WorkingDays)
		})
	}
}

func TestCalculator_Overtime(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	events := weekdayEvents(emp.ID, month, 22, attendance.StatusPresent)
	events[0].OvertimeHours = dec("3")
	events[1].OvertimeHours = dec("2.5")
	// Overtime on an absent day still counts.
	events[2].Status = attendance.StatusAbsent
	events[2].OvertimeHours = dec("10")

	cfg := configWithBasic("17600") // derived hourly rate 17600 / 176 = 100
	rec, err := NewCalculator().ComputeMonth(emp, cfg, events, month, fixedNow)
	require.NoError(t, err)

	assertDecimal(t, "15.5", rec.OvertimeHours, "overtime hours")
	assertDecimal(t, "100", rec.HourlyRate, "hourly rate")
	assertDecimal(t, "2325", rec.OvertimePay, "overtime pay")
	assert.Equal(t, 21, rec.PresentDays)
}

func TestCalculator_ExplicitHourlyRate(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	events := weekdayEvents(emp.ID, month, 1, attendance.StatusPresent)
	events[0].OvertimeHours = dec("4")

	hourly := dec("50")
	cfg := salary.Configuration{BasicSalary: dec("0"), HourlyRate: &hourly}

	rec, err := NewCalculator().ComputeMonth(emp, cfg, events, month, fixedNow)
	require.NoError(t, err)
	assertDecimal(t, "300", rec.OvertimePay, "overtime pay")
}

func TestCalculator_PresentDayRules(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	events := weekdayEvents(emp.ID, month, 4, attendance.StatusPresent)
	events[1].Status = attendance.StatusLate
	events[2].Status = attendance.StatusHalfDay
	events[3].Status = attendance.StatusAbsent

	rec, err := NewCalculator().ComputeMonth(emp, configWithBasic("22000"), events, month, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 2, rec.PresentDays, "present and late count, half-day and absent do not")
	assert.Equal(t, 20, rec.LeaveDays)
	assert.Equal(t, 18, rec.UnpaidLeaveDays)
	assertDecimal(t, "1000", rec.DailySalary, "daily salary")
	assertDecimal(t, "18000", rec.LeaveDeduction, "leave deduction")
	assertDecimal(t, "0", rec.TotalSalary, "total salary is clamped")
}

func TestCalculator_DuplicateDayLastWriteWins(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	day := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	events := []attendance.Event{
		{ID: "a", EmployeeID: emp.ID, Date: day, Status: attendance.StatusAbsent},
		{ID: "b", EmployeeID: emp.ID, Date: day.Add(3 * time.Hour), Status: attendance.StatusPresent, OvertimeHours: dec("1")},
	}

	rec, err := NewCalculator().ComputeMonth(emp, configWithBasic("22000"), events, month, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.PresentDays)
	assertDecimal(t, "1", rec.OvertimeHours, "overtime hours")
	assert.Equal(t, []string{"b"}, rec.SourceAttendanceIDs)
}

func TestCalculator_IgnoresEventsOutsideMonthAndOtherEmployees(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	events := []attendance.Event{
		{ID: "before", EmployeeID: emp.ID, Date: time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
		{ID: "after", EmployeeID: emp.ID, Date: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
		{ID: "other", EmployeeID: "e2", Date: time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
		{ID: "mine", EmployeeID: emp.ID, Date: time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
	}

	rec, err := NewCalculator().ComputeMonth(emp, configWithBasic("22000"), events, month, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.PresentDays)
	assert.Equal(t, []string{"mine"}, rec.SourceAttendanceIDs)
}

func TestCalculator_NeverNegative(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")

	cases := map[string][]attendance.Event{
		"no attendance":                    nil,
		"all absent":                       weekdayEvents(emp.ID, month, 22, attendance.StatusAbsent),
		"all half days":                    weekdayEvents(emp.ID, month, 22, attendance.StatusHalfDay),
		"present days exceed working days": append(weekdayEvents(emp.ID, month, 22, attendance.StatusPresent), weekendEvents(emp.ID, month)...),
	}

	for name, events := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := NewCalculator().ComputeMonth(emp, configWithBasic("130000"), events, month, fixedNow)
			require.NoError(t, err)
			assert.False(t, rec.TotalSalary.IsNegative())
			assert.GreaterOrEqual(t, rec.LeaveDays, 0)
			assert.GreaterOrEqual(t, rec.UnpaidLeaveDays, 0)
		})
	}
}

func weekendEvents(employeeID string, month payroll.Month) []attendance.Event {
	var events []attendance.Event
	for d := month.Start(); d.Before(month.End()); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			events = append(events, attendance.Event{ID: employeeID + "-" + d.Format("0102"), EmployeeID: employeeID, Date: d, Status: attendance.StatusPresent})
		}
	}
	return events
}

func TestCalculator_PresentDaysExceedWorkingDays(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	events := append(weekdayEvents(emp.ID, month, 22, attendance.StatusPresent), weekendEvents(emp.ID, month)...)

	rec, err := NewCalculator().ComputeMonth(emp, configWithBasic("22000"), events, month, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 30, rec.PresentDays)
	assert.Equal(t, 0, rec.LeaveDays)
	assertDecimal(t, "30000", rec.SalaryForPresentDays, "salary for present days")
}

func TestCalculator_IsPure(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	events := weekdayEvents(emp.ID, month, 17, attendance.StatusPresent)
	events[4].OvertimeHours = dec("2.25")
	cfg := configWithBasic("98765.43")

	first, err := NewCalculator().ComputeMonth(emp, cfg, events, month, fixedNow)
	require.NoError(t, err)
	second, err := NewCalculator().ComputeMonth(emp, cfg, events, month, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, first.TotalSalary.Equal(second.TotalSalary))
	assert.True(t, first.TotalDeductions.Equal(second.TotalDeductions))
	assert.True(t, first.OvertimePay.Equal(second.OvertimePay))
	assert.NotEqual(t, first.GeneratedAt, second.GeneratedAt)
}

func TestCalculator_ValidationErrors(t *testing.T) {
	month := mustMonth(t, "2024-04")
	emp := lecturer("e1")
	negativeRate := dec("-1")

	tests := []struct {
		name    string
		cfg     salary.Configuration
		events  []attendance.Event
		month   payroll.Month
		wantErr error
	}{
		{
			name:    "negative basic salary",
			cfg:     configWithBasic("-1"),
			month:   month,
			wantErr: salary.ErrNegativeBasicSalary,
		},
		{
			name:    "negative hourly rate",
			cfg:     salary.Configuration{BasicSalary: dec("1000"), HourlyRate: &negativeRate},
			month:   month,
			wantErr: salary.ErrNegativeHourlyRate,
		},
		{
			name:    "zero month",
			cfg:     configWithBasic("1000"),
			wantErr: payroll.ErrInvalidMonth,
		},
		{
			name: "negative overtime",
			cfg:  configWithBasic("1000"),
			events: []attendance.Event{
				{EmployeeID: emp.ID, Date: month.Start().AddDate(0, 0, 1), Status: attendance.StatusPresent, OvertimeHours: dec("-2")},
			},
			month:   month,
			wantErr: attendance.ErrNegativeOvertime,
		},
		{
			name: "unknown status",
			cfg:  configWithBasic("1000"),
			events: []attendance.Event{
				{EmployeeID: emp.ID, Date: month.Start().AddDate(0, 0, 1), Status: "remote"},
			},
			month:   month,
			wantErr: attendance.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalculator().ComputeMonth(emp, tt.cfg, tt.events, tt.month, fixedNow)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
