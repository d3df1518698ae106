package payroll

import (
	"bytes"
	"context"
)

type PayrollService interface {
	GenerateMonthlyPayroll(ctx context.Context, req GeneratePayrollRequest) (GenerationResponse, error)
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, req ListPayrollRecordsRequest) ([]PayrollRecordResponse, error)
	Approve(ctx context.Context, id string, approvedBy string) (PayrollRecordResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error)
	GetPayrollSummary(ctx context.Context, month string) (PayrollSummaryResponse, error)
	// ExportMonth renders the month as an xlsx workbook and suggests a file name.
	ExportMonth(ctx context.Context, month string) (*bytes.Buffer, string, error)
}
