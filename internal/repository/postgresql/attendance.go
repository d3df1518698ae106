package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/uniadmin/payroll-backend-go/internal/domain/attendance"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/database"
)

type attendanceLedgerImpl struct {
	db *database.DB
}

func NewAttendanceLedger(db *database.DB) attendance.Ledger {
	return &attendanceLedgerImpl{db: db}
}

const attendanceColumns = `id, employee_id, date, status, overtime_hours, notes, created_at, updated_at`

func scanAttendanceEvent(row pgx.Row) (attendance.Event, error) {
	var e attendance.Event
	err := row.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.Status, &e.OvertimeHours, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *attendanceLedgerImpl) GetEvents(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND date >= $2::date AND date < $3::date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		e, err := scanAttendanceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, nil
}

// Upsert writes the event for its day; a second write for the same day replaces it.
func (r *attendanceLedgerImpl) Upsert(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	if !event.Status.IsValid() {
		return attendance.Event{}, attendance.ErrInvalidStatus
	}
	if event.OvertimeHours.IsNegative() {
		return attendance.Event{}, attendance.ErrNegativeOvertime
	}
	if event.ID == "" {
		event.ID = uuid.Must(uuid.NewV7()).String()
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (id, employee_id, date, status, overtime_hours, notes)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			overtime_hours = EXCLUDED.overtime_hours,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	saved, err := scanAttendanceEvent(q.QueryRow(ctx, query,
		event.ID, event.EmployeeID, event.Date, event.Status, event.OvertimeHours, event.Notes,
	))
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to upsert attendance event: %w", err)
	}
	return saved, nil
}
