package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore connects to dsn and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := newPostgresStore(db)
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func newPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{sqlStore{db: db, rebind: dollarPlaceholders}}
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			date TEXT PRIMARY KEY
		);`,
		`CREATE TABLE IF NOT EXISTS outputs (
			date TEXT NOT NULL REFERENCES builds(date),
			ordinal INTEGER NOT NULL,
			benchmark TEXT NOT NULL,
			name TEXT NOT NULL,
			bytes BIGINT NOT NULL,
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
