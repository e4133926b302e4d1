// Package sqlite journals completed simulation steps for post-hoc
// inspection. It is a write-only audit sink: the simulation core never reads
// state back from it.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/dyike/MarketMindGo/internal/models"
)

type Store struct {
	db *sql.DB
}

// RunSummary is one journaled run with its step count.
type RunSummary struct {
	ID           string
	InitialPrice float64
	NumAgents    int
	Steps        int
	CreatedAt    string
}

func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    initial_price REAL NOT NULL,
    num_agents INTEGER NOT NULL,
    statistics TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS steps (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    timestep INTEGER NOT NULL,
    price REAL NOT NULL,
    record TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (run_id, timestep)
);

CREATE INDEX IF NOT EXISTS idx_steps_run_created ON steps(run_id, created_at);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// CreateRun opens a new journaled run and returns its ULID.
func (s *Store) CreateRun(ctx context.Context, initialPrice float64, numAgents int) (string, error) {
	id := ulid.Make().String()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, initial_price, num_agents) VALUES (?, ?, ?)
`, id, initialPrice, numAgents)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// AppendStep journals one completed step record as JSON.
func (s *Store) AppendStep(ctx context.Context, runID string, record models.StepRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal step record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO steps (run_id, timestep, price, record) VALUES (?, ?, ?, ?)
ON CONFLICT(run_id, timestep) DO UPDATE SET
    price=excluded.price,
    record=excluded.record
`, runID, record.Timestep, record.Price, string(payload))
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}
	return nil
}

// FinishRun stores the final statistics of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, stats models.SimulationStatistics) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal statistics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
UPDATE runs SET statistics=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
`, string(payload), runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRuns returns journaled runs, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.initial_price, r.num_agents, COUNT(st.timestep), r.created_at
FROM runs r
LEFT JOIN steps st ON st.run_id = r.id
GROUP BY r.id
ORDER BY r.created_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.ID, &run.InitialPrice, &run.NumAgents, &run.Steps, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run loads one run summary by id.
func (s *Store) Run(ctx context.Context, runID string) (RunSummary, error) {
	var run RunSummary
	err := s.db.QueryRowContext(ctx, `
SELECT r.id, r.initial_price, r.num_agents, COUNT(st.timestep), r.created_at
FROM runs r
LEFT JOIN steps st ON st.run_id = r.id
WHERE r.id = ?
GROUP BY r.id
`, runID).Scan(&run.ID, &run.InitialPrice, &run.NumAgents, &run.Steps, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return RunSummary{}, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return RunSummary{}, fmt.Errorf("load run: %w", err)
	}
	return run, nil
}

// Steps reads back the journaled step records of a run in timestep order.
func (s *Store) Steps(ctx context.Context, runID string) ([]models.StepRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT record FROM steps WHERE run_id=? ORDER BY timestep
`, runID)
	if err != nil {
		return nil, fmt.Errorf("load steps: %w", err)
	}
	defer rows.Close()

	var records []models.StepRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		var record models.StepRecord
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("decode step: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
