// Package sqlite provides the SQLite-backed document cache.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// busyTimeoutMS is how long a locked database is retried before an
// operation fails.
const busyTimeoutMS = 5000

// schema holds the cache table. Keys are canonical source identifiers,
// documents are stored as JSON, and fetched_at is indexed for the lazy
// expiry sweep that runs on writes.
const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	ttl_seconds INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_cache_entries_fetched_at ON cache_entries(fetched_at);
`

// DB wraps a single SQLite connection. The driver is compiled to WASM
// and embedded, so opening a database needs no cgo and no system
// SQLite installation.
type DB struct {
	sql  *sql.DB
	path string
}

// NewDB returns an unopened database handle for path. Use ":memory:"
// for a throwaway in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open establishes the connection, applies the session pragmas, and
// creates the cache schema when missing.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", db.path, err)
	}

	// A single connection sidesteps SQLITE_BUSY between the pipeline's
	// goroutines; SQLite allows one writer at a time anyway.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect %s: %w", db.path, err)
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS),
	}
	// WAL keeps readers unblocked during writes, which suits the
	// cache's write-heavy batch workload. In-memory databases do not
	// support it.
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	db.sql = conn
	return nil
}

// Close releases the connection. Safe to call on an unopened DB.
func (db *DB) Close() error {
	if db.sql == nil {
		return nil
	}
	return db.sql.Close()
}

// Path returns the database location given to NewDB.
func (db *DB) Path() string {
	return db.path
}

// QueryRowContext executes a query expected to return at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.sql.QueryRowContext(ctx, query, args...)
}

// ExecContext executes a statement that returns no rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.sql.ExecContext(ctx, query, args...)
}
