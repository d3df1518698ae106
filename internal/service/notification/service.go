package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uniadmin/payroll-backend-go/internal/domain/notification"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/sse"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/validator"
)

// Topic is the hub topic audit events are broadcast on.
const Topic = "payroll"

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 2 seconds
	WorkerCount   int           // default: 1
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config
	logger *slog.Logger
	now    func() time.Time

	queue   chan *notification.Event
	wg      sync.WaitGroup
	stopCh  chan struct{}
	stopped sync.Once
	mu      sync.RWMutex
	closed  bool
}

// NewNotificationService starts the background workers that persist audit
// events in batches and push them to SSE subscribers.
func NewNotificationService(repo notification.Repository, hub *sse.Hub, logger *slog.Logger, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		logger: logger.With("component", "notification"),
		now:    time.Now,
		queue:  make(chan *notification.Event, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.logger.Info("notification service started",
		"workers", cfg.WorkerCount, "batch_size", cfg.BatchSize, "flush_interval", cfg.FlushInterval)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]*notification.Event, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			s.logger.Error("failed to persist audit events", "worker", id, "count", len(batch), "error", err)
		} else {
			s.logger.Debug("persisted audit events", "worker", id, "count", len(batch))
		}
		// Subscribers see the event even when persistence failed.
		for _, e := range batch {
			s.broadcast(e)
		}

		batch = batch[:0]
	}

	for {
		select {
		case e := <-s.queue:
			batch = append(batch, e)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever was queued before Stop.
			for {
				select {
				case e := <-s.queue:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Publish queues an audit event. A full queue falls back to a direct insert.
func (s *service) Publish(ctx context.Context, req notification.PublishRequest) error {
	if req.Type == "" {
		return notification.ErrEventTypeRequired
	}

	e := &notification.Event{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Type:       req.Type,
		RecordID:   req.RecordID,
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Actor:      req.Actor,
		Data:       req.Data,
		OccurredAt: s.now(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return notification.ErrQueueClosed
	}

	select {
	case s.queue <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return s.directInsert(ctx, e)
	}
}

func (s *service) directInsert(ctx context.Context, e *notification.Event) error {
	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}
	s.broadcast(e)
	return nil
}

func (s *service) broadcast(e *notification.Event) {
	s.hub.Publish(Topic, sse.Event{
		Event: string(e.Type),
		Data:  notification.NewEventResponse(e),
	})
}

func (s *service) ListByMonth(ctx context.Context, month string) ([]notification.EventResponse, error) {
	if !validator.IsValidMonth(month) {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be in YYYY-MM format"}}
	}

	events, err := s.repo.ListByMonth(ctx, month, 0)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.EventResponse, len(events))
	for i, e := range events {
		responses[i] = notification.NewEventResponse(e)
	}
	return responses, nil
}

// Subscribe creates an SSE subscription to payroll audit events.
func (s *service) Subscribe(ctx context.Context) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(Topic)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.EventResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop flushes queued events and stops the workers.
func (s *service) Stop() {
	s.stopped.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		s.logger.Info("notification service stopped")
	})
}
