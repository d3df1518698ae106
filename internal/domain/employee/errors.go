package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidCategory  = errors.New("category must be staff or lecturer")
)
