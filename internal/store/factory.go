package store

import (
	"fmt"
	"strings"
)

// DefaultSQLitePath is used when no database URL is configured.
const DefaultSQLitePath = "wasmweight.db"

// Config holds configuration for the storage backend
type Config struct {
	Type string // "sqlite" or "postgres"
	URL  string // File path for SQLite, DSN for Postgres
}

// New creates a Store for the configured backend
func New(config Config) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.URL == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.URL)
	case "sqlite", "sqlite3", "":
		if config.URL == "" {
			config.URL = DefaultSQLitePath
		}
		return NewSQLiteStore(config.URL)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
