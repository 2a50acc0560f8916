package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scalebench/internal/benchmark"
)

const (
	defaultJSONPath   = ".scalebench/history.json"
	defaultSQLitePath = ".scalebench/history.db"
)

// StoreConfig holds configuration for the storage backend
type StoreConfig struct {
	Type             string // "json", "sqlite" or "postgres"
	ConnectionString string // File path for JSON and SQLite, DSN for Postgres
}

// NewStore creates a new Store instance based on the provided configuration
func NewStore(config StoreConfig) (benchmark.Store, error) {
	switch strings.ToLower(config.Type) {
	case "postgres", "postgresql":
		if config.ConnectionString == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.ConnectionString)
	case "sqlite", "sqlite3":
		if config.ConnectionString == "" {
			config.ConnectionString = defaultSQLitePath
		}
		if err := ensureDir(config.ConnectionString); err != nil {
			return nil, err
		}
		return NewSQLiteStore(config.ConnectionString)
	case "json", "":
		if config.ConnectionString == "" {
			config.ConnectionString = defaultJSONPath
		}
		return benchmark.NewFileStore(config.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

func ensureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
