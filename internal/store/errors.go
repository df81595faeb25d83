package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/johnwards/smetaseed/internal/domain"
)

// WriteError describes a failed write against one table.
type WriteError struct {
	Table string
	Op    string
	Key   string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Table, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func writeError(table, op, key string, err error) error {
	return &WriteError{Table: table, Op: op, Key: key, Err: classify(err)}
}

// classify tags a driver error with the matching domain error so callers can
// branch with errors.Is regardless of the backend.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrWriteConflict), errors.Is(err, domain.ErrConnection),
		errors.Is(err, domain.ErrValidation):
		return err
	case isConflict(err):
		return fmt.Errorf("%w: %w", domain.ErrWriteConflict, err)
	case isConnection(err):
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	return err
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsIntegrityConstraintViolation(pgErr.Code)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

func isConnection(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone)
}
