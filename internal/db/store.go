package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"scalebench/internal/benchmark"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// SQLStore implements benchmark.Store on top of database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

var _ benchmark.Store = (*SQLStore)(nil)

// rebind rewrites '?' placeholders into the dialect's form.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (s *SQLStore) migrate(queries []string) error {
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Save stores sweep with all its series, samples and failures in one transaction.
func (s *SQLStore) Save(sweep benchmark.Sweep) (int64, error) {
	ctx := context.Background()

	threads, err := json.Marshal(sweep.Threads)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal threads: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		s.rebind(`INSERT INTO sweeps (started_at, finished_at, executable, host, threads) VALUES (?, ?, ?, ?, ?) RETURNING id`),
		sweep.StartedAt.UnixNano(), sweep.FinishedAt.UnixNano(), sweep.Executable, sweep.Host, string(threads),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sweep: %w", err)
	}

	for pos, series := range sweep.Series {
		if _, err := tx.ExecContext(ctx,
			s.rebind(`INSERT INTO series (sweep_id, position, steps) VALUES (?, ?, ?)`),
			id, pos, series.Steps,
		); err != nil {
			return 0, fmt.Errorf("failed to insert series %d: %w", series.Steps, err)
		}
		for _, sample := range series.Samples {
			if _, err := tx.ExecContext(ctx,
				s.rebind(`INSERT INTO samples (sweep_id, steps, threads, seconds, wall_clock_ns) VALUES (?, ?, ?, ?, ?)`),
				id, series.Steps, sample.Threads, sample.Seconds, int64(sample.WallClock),
			); err != nil {
				return 0, fmt.Errorf("failed to insert sample: %w", err)
			}
		}
		for _, failure := range series.Failures {
			if _, err := tx.ExecContext(ctx,
				s.rebind(`INSERT INTO failures (sweep_id, steps, threads, kind, message) VALUES (?, ?, ?, ?, ?)`),
				id, series.Steps, failure.Threads, failure.Kind, failure.Message,
			); err != nil {
				return 0, fmt.Errorf("failed to insert failure: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sweep: %w", err)
	}
	return id, nil
}

// Load retrieves one sweep by ID.
func (s *SQLStore) Load(id int64) (*benchmark.Sweep, error) {
	var (
		started, finished int64
		threads           string
		sweep             = benchmark.Sweep{ID: id}
	)
	err := s.db.QueryRow(
		s.rebind(`SELECT started_at, finished_at, executable, host, threads FROM sweeps WHERE id = ?`), id,
	).Scan(&started, &finished, &sweep.Executable, &sweep.Host, &threads)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sweep %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep %d: %w", id, err)
	}
	sweep.StartedAt = time.Unix(0, started)
	sweep.FinishedAt = time.Unix(0, finished)
	if err := json.Unmarshal([]byte(threads), &sweep.Threads); err != nil {
		return nil, fmt.Errorf("failed to decode threads of sweep %d: %w", id, err)
	}

	if err := s.loadSeries(&sweep); err != nil {
		return nil, err
	}
	if err := s.loadSamples(&sweep); err != nil {
		return nil, err
	}
	if err := s.loadFailures(&sweep); err != nil {
		return nil, err
	}
	return &sweep, nil
}

func (s *SQLStore) loadSeries(sweep *benchmark.Sweep) error {
	rows, err := s.db.Query(s.rebind(`SELECT steps FROM series WHERE sweep_id = ? ORDER BY position`), sweep.ID)
	if err != nil {
		return fmt.Errorf("failed to query series: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var steps int64
		if err := rows.Scan(&steps); err != nil {
			return err
		}
		sweep.Series = append(sweep.Series, benchmark.Series{Steps: steps, Samples: []benchmark.Sample{}})
	}
	return rows.Err()
}

func (s *SQLStore) loadSamples(sweep *benchmark.Sweep) error {
	rows, err := s.db.Query(s.rebind(`SELECT steps, threads, seconds, wall_clock_ns FROM samples WHERE sweep_id = ? ORDER BY id`), sweep.ID)
	if err != nil {
		return fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			steps  int64
			sample benchmark.Sample
			wallNs int64
		)
		if err := rows.Scan(&steps, &sample.Threads, &sample.Seconds, &wallNs); err != nil {
			return err
		}
		sample.WallClock = time.Duration(wallNs)
		series := sweep.Lookup(steps)
		if series == nil {
			slog.Warn("sample without series", "sweep", sweep.ID, "steps", steps)
			continue
		}
		series.Samples = append(series.Samples, sample)
	}
	return rows.Err()
}

func (s *SQLStore) loadFailures(sweep *benchmark.Sweep) error {
	rows, err := s.db.Query(s.rebind(`SELECT steps, threads, kind, message FROM failures WHERE sweep_id = ? ORDER BY id`), sweep.ID)
	if err != nil {
		return fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			steps   int64
			failure benchmark.Failure
		)
		if err := rows.Scan(&steps, &failure.Threads, &failure.Kind, &failure.Message); err != nil {
			return err
		}
		if series := sweep.Lookup(steps); series != nil {
			series.Failures = append(series.Failures, failure)
		}
	}
	return rows.Err()
}

// LoadAll returns every stored sweep, oldest first.
func (s *SQLStore) LoadAll() ([]benchmark.Sweep, error) {
	ids, err := s.sweepIDs(`SELECT id FROM sweeps ORDER BY started_at, id`)
	if err != nil {
		return nil, err
	}

	sweeps := make([]benchmark.Sweep, 0, len(ids))
	for _, id := range ids {
		sweep, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		sweeps = append(sweeps, *sweep)
	}
	return sweeps, nil
}

// LoadLatest returns the most recently started sweep, or nil when there is none.
func (s *SQLStore) LoadLatest() (*benchmark.Sweep, error) {
	ids, err := s.sweepIDs(`SELECT id FROM sweeps ORDER BY started_at DESC, id DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.Load(ids[0])
}

func (s *SQLStore) sweepIDs(query string) ([]int64, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweeps: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
