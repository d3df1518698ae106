package notification

import "errors"

var (
	ErrEventTypeRequired = errors.New("event type is required")
	ErrQueueClosed       = errors.New("notification service is stopped")
)
