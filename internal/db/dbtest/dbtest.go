// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/eduvate/eduvate-api/internal/db"
)

// Open returns an empty in-memory SQLite database with the schema applied.
// The pool holds a single connection, so the database lives until Cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	dbh, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}

// Exec runs statements in order and fails the test on the first error.
func Exec(t *testing.T, dbh *sql.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		if _, err := dbh.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
}
