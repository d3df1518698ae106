package notification

import (
	"context"
)

// Repository is the audit log store.
type Repository interface {
	Create(ctx context.Context, event *Event) error
	CreateBatch(ctx context.Context, events []*Event) error
	// ListByMonth returns the month's events, newest first. limit <= 0 means no limit.
	ListByMonth(ctx context.Context, month string, limit int) ([]*Event, error)
}
