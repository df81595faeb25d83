package testhelpers

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/johnwards/smetaseed/internal/database"
)

// NewTestDB returns an in-memory SQLite database configured the same way as
// production. The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewMigratedDB returns an in-memory SQLite database with the seed tables
// already created.
func NewMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := database.Migrate(context.Background(), db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// PostgresDSNEnv names the variable that points tests at a disposable
// Postgres database. Tests that need Postgres are skipped when it is unset.
const PostgresDSNEnv = "SMETASEED_TEST_POSTGRES_DSN"

// NewPostgresDB returns a migrated Postgres database for the DSN in
// PostgresDSNEnv. The seed tables are dropped before and after the test.
func NewPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverPostgres, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}

	drop := func() {
		for _, table := range []string{"regulations", "regions", "estimate_templates", "schema_migrations"} {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				t.Errorf("drop %s: %v", table, err)
			}
		}
	}
	drop()
	t.Cleanup(func() {
		drop()
		_ = db.Close()
	})

	if err := database.Migrate(ctx, db, database.DriverPostgres); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}

	return db
}
