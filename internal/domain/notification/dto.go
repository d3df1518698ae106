package notification

import (
	"time"
)

// ============= Request DTOs =============

// PublishRequest describes an audit event to record and broadcast.
type PublishRequest struct {
	Type       EventType
	RecordID   *string
	EmployeeID *string
	Month      string
	Actor      *string
	Data       map[string]interface{}
}

// ============= Response DTOs =============

type EventResponse struct {
	ID         string                 `json:"id"`
	Type       EventType              `json:"type"`
	RecordID   *string                `json:"record_id,omitempty"`
	EmployeeID *string                `json:"employee_id,omitempty"`
	Month      string                 `json:"month"`
	Actor      *string                `json:"actor,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func NewEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:         e.ID,
		Type:       e.Type,
		RecordID:   e.RecordID,
		EmployeeID: e.EmployeeID,
		Month:      e.Month,
		Actor:      e.Actor,
		Data:       e.Data,
		OccurredAt: e.OccurredAt,
	}
}

// ============= SSE Event =============

// SSEEvent is an audit event as streamed to subscribers.
type SSEEvent struct {
	Event string        `json:"event"`
	Data  EventResponse `json:"data"`
}
