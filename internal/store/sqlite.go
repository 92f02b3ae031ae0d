package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens path and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{sqlStore{db: db, rebind: questionMarks}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			date TEXT PRIMARY KEY
		);`,
		`CREATE TABLE IF NOT EXISTS outputs (
			date TEXT NOT NULL REFERENCES builds(date),
			ordinal INTEGER NOT NULL,
			benchmark TEXT NOT NULL,
			name TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			PRIMARY KEY (date, ordinal)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_outputs_benchmark ON outputs(benchmark);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
