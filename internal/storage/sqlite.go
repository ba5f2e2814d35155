package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunStore journals completed analysis runs in SQLite so past results can
// be listed and compared from the CLI.
type RunStore struct {
	db *sql.DB
}

// RunRecord is one journaled analysis run. Window is the rolling window
// (or simulation length) in trading days; Seed is meaningful only for
// simulation runs.
type RunRecord struct {
	ID            int64
	Symbol        string
	Kind          string // analyze | batch | rolling | simulate
	Leverage      float64
	Expense       float64
	Window        int
	Seed          int64
	Rows          int
	FinalClose    float64
	FinalAdjusted float64
	CreatedAt     time.Time
}

// OpenRunStore opens (and initializes, if needed) the run journal.
func OpenRunStore(dbPath string) (*RunStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_loc=Local")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
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

	return &RunStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		kind TEXT NOT NULL,
		leverage REAL NOT NULL,
		expense REAL NOT NULL,
		window_days INTEGER NOT NULL DEFAULT 0,
		seed INTEGER NOT NULL DEFAULT 0,
		row_count INTEGER NOT NULL,
		final_close REAL,
		final_adjusted REAL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveRun journals one completed run.
func (s *RunStore) SaveRun(r RunRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (symbol, kind, leverage, expense, window_days, seed, row_count, final_close, final_adjusted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Symbol, r.Kind, r.Leverage, r.Expense, r.Window, r.Seed, r.Rows, r.FinalClose, r.FinalAdjusted,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, symbol, kind, leverage, expense, window_days, seed, row_count, final_close, final_adjusted, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Symbol, &r.Kind, &r.Leverage, &r.Expense,
			&r.Window, &r.Seed, &r.Rows, &r.FinalClose, &r.FinalAdjusted, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}
