package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS sweeps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		executable TEXT NOT NULL,
		host TEXT NOT NULL DEFAULT '',
		threads TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS series (
		sweep_id INTEGER NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		PRIMARY KEY (sweep_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sweep_id INTEGER NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
		steps INTEGER NOT NULL,
		threads INTEGER NOT NULL,
		seconds REAL NOT NULL,
		wall_clock_ns INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS failures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sweep_id INTEGER NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
		steps INTEGER NOT NULL,
		threads INTEGER NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_samples_sweep ON samples(sweep_id);`,
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLStore{db: db, dialect: dialectSQLite}
	if err := store.migrate(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}
