package response

import (
	"errors"
	"net/http"

	"github.com/uniadmin/payroll-backend-go/internal/domain/attendance"
	"github.com/uniadmin/payroll-backend-go/internal/domain/employee"
	"github.com/uniadmin/payroll-backend-go/internal/domain/notification"
	"github.com/uniadmin/payroll-backend-go/internal/domain/payroll"
	"github.com/uniadmin/payroll-backend-go/internal/domain/salary"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/jwt"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/validator"
)

// ErrInsufficientRole is returned by role middleware.
var ErrInsufficientRole = errors.New("insufficient role for this operation")

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrMissingUserID):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, ErrInsufficientRole):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidMonth):
		ValidationError(w, map[string]string{"month": "must be in YYYY-MM format"})
	case errors.Is(err, payroll.ErrInvalidStatus):
		ValidationError(w, map[string]string{"status": "must be one of: draft, approved, paid"})
	case errors.Is(err, payroll.ErrApproverRequired):
		Unauthorized(w, "Approver identity is required")

	// Employee and salary domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, salary.ErrSalaryConfigurationNotFound):
		NotFound(w, "Salary configuration not found")
	case errors.Is(err, salary.ErrNegativeBasicSalary),
		errors.Is(err, salary.ErrNegativeHourlyRate),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrNegativeOvertime):
		BadRequest(w, err.Error(), nil)

	// Notification errors
	case errors.Is(err, notification.ErrQueueClosed):
		ServiceUnavailable(w, "Service is shutting down")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
