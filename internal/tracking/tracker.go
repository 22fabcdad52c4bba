// Package tracking records run history in SQLite.
package tracking

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Run is one recorded pipeline run.
type Run struct {
	ID         string
	Input      string
	Output     string
	InWidth    int
	InHeight   int
	OutWidth   int
	OutHeight  int
	Frames     int
	DurationMs int64
	Status     string // "ok" or a short failure summary
	Timestamp  string
}

// Summary aggregates the run history.
type Summary struct {
	TotalRuns   int
	OKRuns      int
	TotalFrames int64
	TotalTimeMs int64
}

// Tracker manages run history in SQLite.
type Tracker struct {
	db *sql.DB
}

// NewTracker opens or creates the run history database.
func NewTracker(dbPath string) (*Tracker, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Tracker{db: db}, nil
}

// Record stores one run.
func (t *Tracker) Record(r Run) error {
	if _, err := t.db.Exec(insertSQL,
		r.ID, r.Input, r.Output,
		r.InWidth, r.InHeight, r.OutWidth, r.OutHeight,
		r.Frames, r.DurationMs, r.Status,
	); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	// Cleanup old records
	t.db.Exec(cleanupSQL)

	return nil
}

// GetSummary returns aggregate run stats.
func (t *Tracker) GetSummary() (*Summary, error) {
	var s Summary
	err := t.db.QueryRow(summarySQL).Scan(&s.TotalRuns, &s.OKRuns, &s.TotalFrames, &s.TotalTimeMs)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &s, nil
}

// GetRecent returns the last n runs, newest first.
func (t *Tracker) GetRecent(n int) ([]Run, error) {
	rows, err := t.db.Query(recentSQL, n)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Input, &r.Output,
			&r.InWidth, &r.InHeight, &r.OutWidth, &r.OutHeight,
			&r.Frames, &r.DurationMs, &r.Status, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("recent scan: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the database connection.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// DBPath resolves the run history database path.
func DBPath(configPath string) string {
	if p := os.Getenv("FFGMIC_DB_PATH"); p != "" {
		return p
	}
	if configPath != "" {
		return configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "ffmpeg-gmic-plus", "runs.db")
}
