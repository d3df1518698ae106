package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uniadmin/payroll-backend-go/internal/pkg/database"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is not set.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, truncateAllTables(ctx, db))
	return db
}

func truncateAllTables(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payroll_audit_log",
		"payroll_records",
		"attendance_events",
		"salary_configurations",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// insertEmployee seeds an employee row and returns its id.
func insertEmployee(t *testing.T, db *database.DB, code, category, department string, position *string, active bool) string {
	t.Helper()
	id := uuid.Must(uuid.NewV7()).String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO employees (id, display_code, full_name, category, department, position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, code, "Employee "+code, category, department, position, active)
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }
