// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("store: run not found")

// timeLayout is fixed-width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded search.
type Run struct {
	ID        string
	CreatedAt time.Time
	Source    string // input file name, or "-" for stdin
	Points    int
	Slots     int
	Order     string
	Verdict   string
	Nodes     int
	DeadEnds  int
	Solutions int
	Stopped   bool
	Elapsed   time.Duration
}

// Solution is one recorded scenario of a run.
type Solution struct {
	Index    int
	Choices  []int
	Earliest []int64
}

// Store provides SQLite-backed persistence for runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)
	if err = Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// New returns a Store bound to an existing, migrated database handle.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records run and its solutions in one transaction. An empty run.ID
// is replaced by a fresh UUID; a zero CreatedAt by the current time. The
// stored ID is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, sols []Solution) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save run: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, source, points, slots, slot_order, verdict, nodes, dead_ends, solutions, stopped, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(timeLayout), run.Source, run.Points, run.Slots,
		run.Order, run.Verdict, run.Nodes, run.DeadEnds, run.Solutions, boolInt(run.Stopped), int64(run.Elapsed))
	if err != nil {
		return "", fmt.Errorf("save run: insert run: %w", err)
	}

	for _, sol := range sols {
		choices, err := json.Marshal(sol.Choices)
		if err != nil {
			return "", fmt.Errorf("save run: encode choices: %w", err)
		}
		earliest, err := json.Marshal(sol.Earliest)
		if err != nil {
			return "", fmt.Errorf("save run: encode earliest: %w", err)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO solutions (run_id, idx, choices, earliest) VALUES (?, ?, ?, ?)`,
			run.ID, sol.Index, string(choices), string(earliest))
		if err != nil {
			return "", fmt.Errorf("save run: insert solution %d: %w", sol.Index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("save run: commit: %w", err)
	}

	return run.ID, nil
}

const runColumns = `id, created_at, source, points, slots, slot_order, verdict, nodes, dead_ends, solutions, stopped, elapsed_ns`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run     Run
		created string
		stopped int
		elapsed int64
	)
	err := row.Scan(&run.ID, &created, &run.Source, &run.Points, &run.Slots, &run.Order, &run.Verdict,
		&run.Nodes, &run.DeadEnds, &run.Solutions, &stopped, &elapsed)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt, err = time.Parse(timeLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.Stopped = stopped != 0
	run.Elapsed = time.Duration(elapsed)

	return run, nil
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}

	return run, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}

// Solutions returns the solutions of a run in emission order.
func (s *Store) Solutions(ctx context.Context, runID string) ([]Solution, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, choices, earliest FROM solutions WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("solutions: %w", err)
	}
	defer rows.Close()

	var sols []Solution
	for rows.Next() {
		var (
			sol               Solution
			choices, earliest string
		)
		if err = rows.Scan(&sol.Index, &choices, &earliest); err != nil {
			return nil, fmt.Errorf("solutions: scan: %w", err)
		}
		if err = json.Unmarshal([]byte(choices), &sol.Choices); err != nil {
			return nil, fmt.Errorf("solutions: decode choices: %w", err)
		}
		if err = json.Unmarshal([]byte(earliest), &sol.Earliest); err != nil {
			return nil, fmt.Errorf("solutions: decode earliest: %w", err)
		}
		sols = append(sols, sol)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("solutions: %w", err)
	}

	return sols, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
