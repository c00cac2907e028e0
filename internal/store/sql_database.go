package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/migrations"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
)

// DB wraps the shared *sql.DB pool together with the backend's error
// classifier. Repositories embed it and route every statement through
// [DB.executor] so that requests holding a pinned session connection reuse
// it instead of grabbing a fresh one from the pool.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded goose migrations. Only the PostgreSQL backend
// uses it; the SQLite backend bootstraps its schema at connect time.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// executor is the statement surface shared by *sql.DB and *sql.Conn.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// executor returns the connection pinned to ctx by an open dispatch session,
// or the pool when the caller runs outside a session (startup, workers).
func (db *DB) executor(ctx context.Context) executor {
	if conn, ok := ctx.Value(sessionConnKey).(*sql.Conn); ok {
		return conn
	}

	return db.DB
}

// wrapQueryError wraps a failed statement execution. Errors the classifier
// reports as retryable surface as [ErrStorageUnavailable] so callers can map
// them to a temporary-outage response; everything else keeps the generic
// [ErrExecutingQuery] wrap.
func (db *DB) wrapQueryError(err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

// isUniqueViolation reports whether err is a unique-constraint violation on
// either supported backend.
func isUniqueViolation(err error) bool {
	if postgresError(err) == pgerrcode.UniqueViolation {
		return true
	}

	if sqliteErr, ok := sqliteError(err); ok {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
