// Package db keeps a small sqlite catalog of pipeline runs: which stages
// ran, when, how many rows they produced, and where the outputs went.
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS stage_runs (
	id          TEXT PRIMARY KEY,
	run_id      TEXT NOT NULL,
	stage       TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	row_count   INTEGER,
	outputs     TEXT,
	status      TEXT,
	detail      TEXT
);
CREATE INDEX IF NOT EXISTS idx_stage_runs_run ON stage_runs (run_id);
`

// Catalog records stage executions for one pipeline run.
type Catalog struct {
	db    *sql.DB
	RunID string
}

// Open opens (creating if needed) the catalog at path and starts a new
// run. Every stage recorded through this handle shares the run id.
func Open(path string) (*Catalog, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}
	return &Catalog{db: conn, RunID: uuid.NewString()}, nil
}

func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// StageRun is an in-flight stage record. Finish writes the terminal row.
type StageRun struct {
	catalog *Catalog
	id      string
	stage   string
	started time.Time
}

// StartStage opens a stage record. A nil catalog yields a no-op record so
// callers never have to branch on catalog availability.
func (c *Catalog) StartStage(stage string) (*StageRun, error) {
	if c == nil {
		return &StageRun{stage: stage, started: time.Now().UTC()}, nil
	}
	run := &StageRun{
		catalog: c,
		id:      uuid.NewString(),
		stage:   stage,
		started: time.Now().UTC(),
	}
	_, err := c.db.Exec(
		`INSERT INTO stage_runs (id, run_id, stage, started_at, status) VALUES (?, ?, ?, ?, ?)`,
		run.id, c.RunID, stage, run.started.Format(time.RFC3339), "running",
	)
	if err != nil {
		return nil, fmt.Errorf("record stage start %s: %w", stage, err)
	}
	return run, nil
}

// Finish closes the stage record with its outcome. stageErr nil means the
// stage completed.
func (s *StageRun) Finish(rowCount int, outputs []string, stageErr error) error {
	if s == nil || s.catalog == nil {
		return nil
	}
	status, detail := "ok", ""
	if stageErr != nil {
		status, detail = "failed", stageErr.Error()
	}
	_, err := s.catalog.db.Exec(
		`UPDATE stage_runs SET finished_at = ?, row_count = ?, outputs = ?, status = ?, detail = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), rowCount, strings.Join(outputs, ";"), status, detail, s.id,
	)
	if err != nil {
		return fmt.Errorf("record stage finish %s: %w", s.stage, err)
	}
	return nil
}

// StageSummary is one catalog row, as read back for reporting.
type StageSummary struct {
	Stage      string
	Status     string
	RowCount   int
	Outputs    []string
	StartedAt  string
	FinishedAt string
}

// History lists the stage records of the current run in execution order.
func (c *Catalog) History() ([]StageSummary, error) {
	if c == nil {
		return nil, nil
	}
	rows, err := c.db.Query(
		`SELECT stage, status, COALESCE(row_count, 0), COALESCE(outputs, ''),
		        started_at, COALESCE(finished_at, '')
		 FROM stage_runs WHERE run_id = ? ORDER BY started_at, rowid`,
		c.RunID,
	)
	if err != nil {
		return nil, fmt.Errorf("read catalog history: %w", err)
	}
	defer rows.Close()

	var out []StageSummary
	for rows.Next() {
		var s StageSummary
		var outputs string
		if err := rows.Scan(&s.Stage, &s.Status, &s.RowCount, &outputs, &s.StartedAt, &s.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		if outputs != "" {
			s.Outputs = strings.Split(outputs, ";")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
