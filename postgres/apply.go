// Package postgres loads rendered statements into a PostgreSQL database.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"kastelo.dev/roster"
)

// StatementError is the failure of a single statement. The transaction
// it ran in has been rolled back.
type StatementError struct {
	Row int
	Err error
}

func (e *StatementError) Error() string {
	var pqErr *pq.Error
	if errors.As(e.Err, &pqErr) {
		return fmt.Sprintf("row %d: %s (SQLSTATE %s)", e.Row, pqErr.Message, pqErr.Code)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// NormalizeDSN converts postgres:// URLs to the key/value form.
// Key/value strings are returned unchanged.
func NormalizeDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return pq.ParseURL(dsn)
	}
	if dsn == "" {
		return "", errors.New("empty connection string")
	}
	return dsn, nil
}

// Apply executes all statements in a single transaction and returns the
// number of statements executed. Nothing is committed unless every
// statement succeeds.
func Apply(ctx context.Context, dsn string, stmts []roster.Statement) (int, error) {
	dsn, err := NormalizeDSN(dsn)
	if err != nil {
		return 0, err
	}
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return 0, err
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt.SQL); err != nil {
			_ = tx.Rollback()
			return 0, &StatementError{Row: stmt.Row, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stmts), nil
}
