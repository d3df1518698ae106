package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/uniadmin/payroll-backend-go/internal/domain/notification"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates the payroll audit log repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create appends one audit event
func (r *notificationRepository) Create(ctx context.Context, e *notification.Event) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}

	data := e.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event data: %w", err)
	}

	query := `
		INSERT INTO payroll_audit_log (id, type, record_id, employee_id, month, actor, data, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = q.Exec(ctx, query,
		e.ID,
		string(e.Type),
		e.RecordID,
		e.EmployeeID,
		e.Month,
		e.Actor,
		dataJSON,
		e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit event: %w", err)
	}

	return nil
}

// CreateBatch appends events in a single transaction
func (r *notificationRepository) CreateBatch(ctx context.Context, events []*notification.Event) error {
	if len(events) == 0 {
		return nil
	}

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, e := range events {
			if err := r.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByMonth returns the month's audit events, newest first
func (r *notificationRepository) ListByMonth(ctx context.Context, month string, limit int) ([]*notification.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, record_id, employee_id, month, actor, data, occurred_at
		FROM payroll_audit_log
		WHERE month = $1
		ORDER BY occurred_at DESC, id DESC
	`
	args := []interface{}{month}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []*notification.Event
	for rows.Next() {
		var (
			e        notification.Event
			dataJSON []byte
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.RecordID, &e.EmployeeID, &e.Month, &e.Actor, &dataJSON, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &e.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit event data: %w", err)
			}
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit events: %w", err)
	}

	return events, nil
}
