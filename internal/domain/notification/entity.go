package notification

import (
	"time"
)

// EventType is the kind of payroll audit event.
type EventType string

const (
	TypePayrollGenerated        EventType = "payroll_generated"
	TypePayrollGenerationFailed EventType = "payroll_generation_failed"
	TypePayrollApproved         EventType = "payroll_approved"
	TypePayrollPaid             EventType = "payroll_paid"
)

// AllEventTypes returns all audit event types
func AllEventTypes() []EventType {
	return []EventType{
		TypePayrollGenerated,
		TypePayrollGenerationFailed,
		TypePayrollApproved,
		TypePayrollPaid,
	}
}

// Event is one entry of the payroll audit log. Events are append-only.
type Event struct {
	ID         string
	Type       EventType
	RecordID   *string
	EmployeeID *string
	Month      string
	Actor      *string
	Data       map[string]interface{}
	OccurredAt time.Time
}
