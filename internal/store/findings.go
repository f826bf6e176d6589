// Package store persists analysis runs and their findings to a local
// sqlite database, enabling baseline diffs between runs.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"a11yscan/internal/detect"
	"a11yscan/internal/logging"
)

// Run is one persisted analysis run.
type Run struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Files     int       `json:"files"`
	Findings  int       `json:"findings"`
	Degraded  bool      `json:"degraded"`
}

// Store manages the findings database under the workspace directory.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// Open creates or opens the findings store in the given workspace
// directory (typically .a11yscan).
func Open(workspaceDir string) (*Store, error) {
	dbPath := filepath.Join(workspaceDir, "findings.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.StoreDebug("opened findings store at %s", dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		files INTEGER NOT NULL,
		findings INTEGER NOT NULL,
		degraded INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	CREATE TABLE IF NOT EXISTS findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		rule TEXT NOT NULL,
		wcag TEXT,
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		col INTEGER NOT NULL,
		degraded INTEGER NOT NULL DEFAULT 0,
		detail_json TEXT,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
	CREATE INDEX IF NOT EXISTS idx_findings_rule ON findings(rule);
	CREATE INDEX IF NOT EXISTS idx_findings_location ON findings(file, line);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun persists a run and its findings in one transaction, returning
// the generated run id.
func (s *Store) SaveRun(files int, degraded bool, findings []detect.Finding) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.New().String()
	_, err = tx.Exec(
		`INSERT INTO runs (id, timestamp, files, findings, degraded) VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), files, len(findings), boolInt(degraded),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO findings
		(run_id, rule, wcag, severity, message, file, line, col, degraded, detail_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		detail, _ := json.Marshal(f)
		_, err = stmt.Exec(runID, f.Rule, f.WCAG, string(f.Severity), f.Message,
			f.Location.File, f.Location.Line, f.Location.Column, boolInt(f.Degraded), string(detail))
		if err != nil {
			return "", fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	logging.Store("saved run %s: %d findings across %d files", runID, len(findings), files)
	return runID, nil
}

// LatestRun returns the most recent run, or nil when the store is empty.
func (s *Store) LatestRun() (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, timestamp, files, findings, degraded FROM runs ORDER BY timestamp DESC, id DESC LIMIT 1`)

	var r Run
	var degraded int
	err := row.Scan(&r.ID, &r.Timestamp, &r.Files, &r.Findings, &degraded)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	r.Degraded = degraded != 0
	return &r, nil
}

// FindingsForRun loads all findings of a run in location order.
func (s *Store) FindingsForRun(runID string) ([]detect.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT rule, wcag, severity, message, file, line, col, degraded
		 FROM findings WHERE run_id = ? ORDER BY file, line, col, rule`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var out []detect.Finding
	for rows.Next() {
		var f detect.Finding
		var severity string
		var degraded int
		if err := rows.Scan(&f.Rule, &f.WCAG, &severity, &f.Message,
			&f.Location.File, &f.Location.Line, &f.Location.Column, &degraded); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		f.Severity = detect.Severity(severity)
		f.Degraded = degraded != 0
		out = append(out, f)
	}
	return out, rows.Err()
}

// NewSince diffs findings against a baseline run: everything in current
// that has no (rule, file, line) match in the baseline.
func (s *Store) NewSince(baselineRunID string, current []detect.Finding) ([]detect.Finding, error) {
	baseline, err := s.FindingsForRun(baselineRunID)
	if err != nil {
		return nil, err
	}

	type key struct {
		rule string
		file string
		line int
	}
	seen := make(map[key]bool, len(baseline))
	for _, f := range baseline {
		seen[key{f.Rule, f.Location.File, f.Location.Line}] = true
	}

	var out []detect.Finding
	for _, f := range current {
		if !seen[key{f.Rule, f.Location.File, f.Location.Line}] {
			out = append(out, f)
		}
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
