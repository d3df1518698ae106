package payroll

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payroll"

var exportHeaders = []string{
	"Employee Code", "Employee Name", "Month", "Status",
	"Working Days", "Present Days", "Leave Days", "Unpaid Leave Days", "Overtime Hours",
	"Basic Salary", "Daily Salary", "Salary For Present Days", "Overtime Pay", "Gross Salary",
	"Leave Deduction", "Tax Rate", "Tax Deduction", "Total Deductions", "Total Salary",
	"Approved By", "Approved At", "Paid At",
}

// ExportMonth writes the month's records to an xlsx workbook, one row per
// record plus a totals row.
func (s *PayrollServiceImpl) ExportMonth(ctx context.Context, month string) (*bytes.Buffer, string, error) {
	m, err := payroll.ParseMonth(month)
	if err != nil {
		return nil, "", err
	}

	records, err := s.payrollRepo.ListByMonth(ctx, payroll.PayrollFilter{Month: m})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	moneyStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	for i, h := range exportHeaders {
		f.SetCellValue(exportSheet, cell(i, 1), h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	f.SetCellStyle(exportSheet, "A1", lastCol+"1", headerStyle)
	f.SetColWidth(exportSheet, "A", "B", 22)
	f.SetColWidth(exportSheet, "C", lastCol, 16)

	var totalBasic, totalOvertime, totalDeductions, totalSalary decimal.Decimal
	row := 2
	for _, r := range records {
		values := []interface{}{
			deref(r.EmployeeCode), deref(r.EmployeeName), r.Month.String(), string(r.Status),
			r.WorkingDays, r.PresentDays, r.LeaveDays, r.UnpaidLeaveDays, r.OvertimeHours.InexactFloat64(),
			r.BasicSalary.InexactFloat64(), r.DailySalary.InexactFloat64(), r.SalaryForPresentDays.InexactFloat64(),
			r.OvertimePay.InexactFloat64(), r.GrossSalary.InexactFloat64(),
			r.LeaveDeduction.InexactFloat64(), r.TaxRate.InexactFloat64(), r.TaxDeduction.InexactFloat64(),
			r.TotalDeductions.InexactFloat64(), r.TotalSalary.InexactFloat64(),
			deref(r.ApprovedBy), formatTime(r.ApprovedAt), formatTime(r.PaidAt),
		}
		for i, v := range values {
			f.SetCellValue(exportSheet, cell(i, row), v)
		}

		totalBasic = totalBasic.Add(r.BasicSalary)
		totalOvertime = totalOvertime.Add(r.OvertimePay)
		totalDeductions = totalDeductions.Add(r.TotalDeductions)
		totalSalary = totalSalary.Add(r.TotalSalary)
		row++
	}

	f.SetCellValue(exportSheet, cell(0, row), "TOTAL")
	f.SetCellValue(exportSheet, cell(9, row), totalBasic.InexactFloat64())
	f.SetCellValue(exportSheet, cell(12, row), totalOvertime.InexactFloat64())
	f.SetCellValue(exportSheet, cell(17, row), totalDeductions.InexactFloat64())
	f.SetCellValue(exportSheet, cell(18, row), totalSalary.InexactFloat64())
	f.SetCellStyle(exportSheet, cell(9, 2), cell(18, row), moneyStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf, fmt.Sprintf("payroll_%s.xlsx", m.String()), nil
}

// cell converts a zero-based column and one-based row to an A1 reference.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
