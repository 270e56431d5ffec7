package store

import (
	"context"
	"fmt"

	"github.com/franz/trackbench/internal/util"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver
)

// Store wraps the SQLite connection holding the tracks dataset.
// It is an explicit handle: callers pass it down rather than relying on
// ambient global state, so tests can substitute an isolated database.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	// WAL and a busy timeout for reliability; a single writer is all
	// SQLite needs here since provisioning and querying are serialized
	// phases. The driver takes pragmas in _pragma=name(value) form.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, &util.ConnectionError{Err: err}
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &util.ConnectionError{Err: err}
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an already-open connection. Lets tests substitute a
// mock or fixture database for the real file-backed one.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection for custom queries
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Transaction executes a function within a transaction
func (s *Store) Transaction(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CheckIntegrity runs PRAGMA integrity_check on the database
func (s *Store) CheckIntegrity(ctx context.Context) error {
	var result string
	err := s.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result)
	if err != nil {
		return fmt.Errorf("integrity check query failed: %w", err)
	}

	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	return nil
}

// SQLiteVersion returns the SQLite version string
func SQLiteVersion() string {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return ""
	}
	defer db.Close()

	var version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return ""
	}
	return version
}
