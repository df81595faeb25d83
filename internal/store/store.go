package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/johnwards/smetaseed/internal/database"
	"github.com/johnwards/smetaseed/internal/domain"
)

// Table names written by the seeder.
const (
	TableRegulations = "regulations"
	TableRegions     = "regions"
	TableTemplates   = "estimate_templates"
)

// Session is one exclusively held connection to the reference-data store.
// It must be closed exactly once when the caller is done with it.
type Session interface {
	CreateRegulations(ctx context.Context, regs []domain.Regulation) (int, error)
	UpsertRegion(ctx context.Context, r domain.Region) error
	CreateTemplates(ctx context.Context, tpls []domain.EstimateTemplate) (int, error)
	Close() error
}

// Connector hands out sessions.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// Store is the SQL-backed reference-data store.
type Store struct {
	DB     *sql.DB
	driver database.Driver
	now    func() time.Time
}

var _ Connector = (*Store)(nil)

// New creates a Store over db using the placeholder dialect of driver.
func New(db *sql.DB, driver database.Driver) *Store {
	return &Store{
		DB:     db,
		driver: driver,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Connect acquires a dedicated connection from the pool.
func (s *Store) Connect(ctx context.Context) (Session, error) {
	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire connection: %w", domain.ErrConnection, err)
	}
	return &sqlSession{conn: conn, driver: s.driver, now: s.now}, nil
}

// Count returns the number of rows in one of the seeded tables.
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	switch table {
	case TableRegulations, TableRegions, TableTemplates:
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// timestamp formats t the way rows store created/updated times.
func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func parseTimestamp(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05.000Z", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", v, err)
	}
	return t, nil
}
