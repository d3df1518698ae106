package notification

import (
	"context"
)

// Publisher is the write side used by payroll. Publish never blocks on the store.
type Publisher interface {
	Publish(ctx context.Context, req PublishRequest) error
}

type Service interface {
	Publisher

	ListByMonth(ctx context.Context, month string) ([]EventResponse, error)

	// SSE subscription
	Subscribe(ctx context.Context) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
