package payroll

import "errors"

var (
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrInvalidMonth            = errors.New("month must be in YYYY-MM format")
	ErrInvalidStatus           = errors.New("invalid payroll status")
	ErrInvalidStatusTransition = errors.New("invalid payroll status transition")
	ErrApproverRequired        = errors.New("approver identity is required")
	ErrNoWorkingDays           = errors.New("month has no working days but attendance shows present days")
)
