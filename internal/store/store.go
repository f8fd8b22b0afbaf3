// Package store provides SQLite persistence for object-detection results.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SchemaError reports a failure to create the persistent schema.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string { return fmt.Sprintf("ensure schema: %v", e.Err) }

func (e *SchemaError) Unwrap() error { return e.Err }

// PersistenceError reports a failed detection write. The enclosing
// transaction is rolled back; no partial batch is ever committed.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persist detections: %v", e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store represents a SQLite database connection for storing detection results.
type Store struct {
	db   *sql.DB
	path string
}

// New creates a new Store with the given database path. It opens the
// database connection and ensures the schema exists.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &SchemaError{Err: fmt.Errorf("open database: %w", err)}
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
