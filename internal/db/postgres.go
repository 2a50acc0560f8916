package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS sweeps (
		id BIGSERIAL PRIMARY KEY,
		started_at BIGINT NOT NULL,
		finished_at BIGINT NOT NULL,
		executable TEXT NOT NULL,
		host TEXT NOT NULL DEFAULT '',
		threads TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS series (
		sweep_id BIGINT NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		steps BIGINT NOT NULL,
		PRIMARY KEY (sweep_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS samples (
		id BIGSERIAL PRIMARY KEY,
		sweep_id BIGINT NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
		steps BIGINT NOT NULL,
		threads INTEGER NOT NULL,
		seconds DOUBLE PRECISION NOT NULL,
		wall_clock_ns BIGINT NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS failures (
		id BIGSERIAL PRIMARY KEY,
		sweep_id BIGINT NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
		steps BIGINT NOT NULL,
		threads INTEGER NOT NULL,
		kind TEXT NOT NULL,
		message TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_samples_sweep ON samples(sweep_id);`,
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLStore{db: db, dialect: dialectPostgres}
	if err := store.migrate(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}
