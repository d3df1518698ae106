package attendance

import "errors"

var (
	ErrInvalidStatus    = errors.New("attendance status must be present, late, half-day or absent")
	ErrNegativeOvertime = errors.New("overtime hours must be non-negative")
)
