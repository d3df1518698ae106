package employee

import (
	"time"
)

// Employee is a staff member or lecturer as held by the employee directory.
// It is read-only to payroll.
type Employee struct {
	ID          string
	DisplayCode string
	FullName    string
	Category    Category
	Department  string
	Position    *string  // staff only
	Subjects    []string // lecturer only
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category string

const (
	CategoryStaff    Category = "staff"
	CategoryLecturer Category = "lecturer"
)

func (c Category) IsValid() bool {
	return c == CategoryStaff || c == CategoryLecturer
}

// PositionName returns the position or an empty string.
func (e Employee) PositionName() string {
	if e.Position == nil {
		return ""
	}
	return *e.Position
}
