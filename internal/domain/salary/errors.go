package salary

import "errors"

var (
	ErrSalaryConfigurationNotFound = errors.New("salary configuration not found")
	ErrNegativeBasicSalary         = errors.New("basic salary must be non-negative")
	ErrNegativeHourlyRate          = errors.New("hourly rate must be non-negative")
)
