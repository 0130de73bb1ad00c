// Package store persists exploration runs and their paths in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	machine_id  TEXT NOT NULL,
	mode        TEXT NOT NULL,
	states      INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS paths (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT NOT NULL,
	target_key     TEXT NOT NULL,
	ordinal        INTEGER NOT NULL,
	weight         INTEGER NOT NULL,
	segments_json  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS paths_run ON paths(run_id);
`

// timeLayout is fixed-width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store keeps exploration runs in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores run and its paths in one transaction and returns the new run id.
// RunID and CreatedAt of run are ignored.
func (s *Store) SaveRun(run Run) (string, error) {
	id := uuid.New().String()
	now := s.now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, machine_id, mode, states, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, run.MachineID, run.Mode, run.States, now.Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, p := range run.Paths {
		segJSON, err := json.Marshal(p.Segments)
		if err != nil {
			return "", fmt.Errorf("marshal segments: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO paths (run_id, target_key, ordinal, weight, segments_json)
			 VALUES (?, ?, ?, ?, ?)`,
			id, p.TargetKey, p.Ordinal, p.Weight, string(segJSON),
		)
		if err != nil {
			return "", fmt.Errorf("insert path: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Runs returns all runs, oldest first, without their paths.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, machine_id, mode, states, created_at
		 FROM runs ORDER BY created_at, run_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdStr string
		if err := rows.Scan(&run.RunID, &run.MachineID, &run.Mode, &run.States, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		createdAt, err := time.Parse(timeLayout, createdStr)
		if err != nil {
			return nil, fmt.Errorf("parse created_at of run %s: %w", run.RunID, err)
		}
		run.CreatedAt = createdAt
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Paths returns the paths of a run in the order they were saved.
func (s *Store) Paths(runID string) ([]PathRecord, error) {
	rows, err := s.db.Query(
		`SELECT target_key, ordinal, weight, segments_json
		 FROM paths WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query paths %s: %w", runID, err)
	}
	defer rows.Close()

	var paths []PathRecord
	for rows.Next() {
		var p PathRecord
		var segJSON string
		if err := rows.Scan(&p.TargetKey, &p.Ordinal, &p.Weight, &segJSON); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		if err := json.Unmarshal([]byte(segJSON), &p.Segments); err != nil {
			return nil, fmt.Errorf("unmarshal segments: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
