package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Run file statuses
const (
	RunFileOK        = "ok"
	RunFileReplaced  = "replaced"
	RunFileDuplicate = "duplicate"
	RunFileFailed    = "failed"
)

// Run records one invocation of the processing pipeline
type Run struct {
	ID         string
	Mode       string // "files", "all" or "rebuild"
	StartedAt  time.Time
	FinishedAt time.Time
	Files      int
	Succeeded  int
	Failed     int
}

// RunFile records the outcome for one file within a run
type RunFile struct {
	RunID       string
	Path        string
	GameKey     string
	Status      string
	Error       string
	Appearances int
	Warnings    int
	ProcessedAt time.Time
}

// CreateRun starts a new run record
func (s *Store) CreateRun(mode string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, mode, started_at) VALUES (?, ?, ?)
	`, run.ID, run.Mode, run.StartedAt)
	if err != nil {
		return nil, unavailable("create run", err)
	}
	return run, nil
}

// RecordRunFile inserts or updates the outcome of one file
func (s *Store) RecordRunFile(f *RunFile) error {
	if f.ProcessedAt.IsZero() {
		f.ProcessedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO run_files
		(run_id, path, game_key, status, error, appearances, warnings, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.RunID, f.Path, f.GameKey, f.Status, f.Error, f.Appearances, f.Warnings, f.ProcessedAt)
	if err != nil {
		return unavailable("record run file", err)
	}
	return nil
}

// FinishRun stamps the run with its totals
func (s *Store) FinishRun(run *Run) error {
	run.FinishedAt = time.Now().UTC()

	_, err := s.db.Exec(`
		UPDATE runs SET finished_at = ?, files = ?, succeeded = ?, failed = ?
		WHERE id = ?
	`, run.FinishedAt, run.Files, run.Succeeded, run.Failed, run.ID)
	if err != nil {
		return unavailable("finish run", err)
	}
	return nil
}

// LatestRun returns the most recently started run, or nil if there is none
func (s *Store) LatestRun() (*Run, error) {
	var run Run
	var finished sql.NullTime

	err := s.db.QueryRow(`
		SELECT id, mode, started_at, finished_at, files, succeeded, failed
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Mode, &run.StartedAt, &finished, &run.Files, &run.Succeeded, &run.Failed)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("load latest run", err)
	}

	run.FinishedAt = finished.Time
	return &run, nil
}

// RunFiles returns the per-file outcomes of a run in processing order
func (s *Store) RunFiles(runID string) ([]*RunFile, error) {
	rows, err := s.db.Query(`
		SELECT run_id, path, COALESCE(game_key, ''), status, COALESCE(error, ''),
		       appearances, warnings, processed_at
		FROM run_files
		WHERE run_id = ?
		ORDER BY processed_at, path
	`, runID)
	if err != nil {
		return nil, unavailable("load run files", err)
	}
	defer rows.Close()

	var files []*RunFile
	for rows.Next() {
		var f RunFile
		err := rows.Scan(&f.RunID, &f.Path, &f.GameKey, &f.Status, &f.Error,
			&f.Appearances, &f.Warnings, &f.ProcessedAt)
		if err != nil {
			return nil, unavailable("scan run file", err)
		}
		files = append(files, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("load run files", err)
	}
	return files, nil
}
