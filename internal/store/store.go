// Package store implements the identity and catalog stores over SQLite.
// Uniqueness is enforced here at the schema boundary; constraint violations
// and missing rows are mapped onto the shared error taxonomy so the layers
// above never see raw driver errors.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/isdelr/streamy-api/internal/apperr"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, letting a store run inside
// or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// notFound wraps a missing-row error with the record description.
func notFound(what string) error {
	return apperr.NotFound(what)
}

// mapWriteErr classifies driver errors from INSERT/UPDATE statements.
// UNIQUE and PRIMARY KEY violations become Conflict; CHECK violations become
// Validation; everything else passes through wrapped.
func mapWriteErr(err error, op string) error {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return apperr.Conflict("record already exists")
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return apperr.Validation("value out of range")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
