// Package persistence stores finished diffusion runs in SQLite and exports
// them as zstd-compressed JSON lines. Only final per-case results are kept,
// never per-day state.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/euro-diffusion/internal/report"
)

// DB wraps a SQLite connection for run history.
type DB struct {
	conn *sqlx.DB
}

// Run is one invocation over an input source.
type Run struct {
	ID          string `db:"id" json:"id"`
	StartedUnix int64  `db:"started_unix" json:"started_unix"`
	Source      string `db:"source" json:"source"`
	Cases       int    `db:"cases" json:"cases"`
}

// Started returns the run start time.
func (r Run) Started() time.Time {
	return time.Unix(r.StartedUnix, 0)
}

// CaseResult is the outcome of one case: either results or an error.
type CaseResult struct {
	Number  int            `db:"case_number" json:"case"`
	Error   string         `db:"error" json:"error,omitempty"`
	Results []report.Entry `db:"-" json:"results,omitempty"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_unix INTEGER NOT NULL,
		source TEXT NOT NULL,
		cases INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS case_results (
		run_id TEXT NOT NULL REFERENCES runs(id),
		case_number INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, case_number)
	);

	CREATE TABLE IF NOT EXISTS territory_days (
		run_id TEXT NOT NULL REFERENCES runs(id),
		case_number INTEGER NOT NULL,
		name TEXT NOT NULL,
		days INTEGER NOT NULL,
		PRIMARY KEY (run_id, case_number, name)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_unix);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun stores every case result of a run under a fresh run ID.
func (db *DB) SaveRun(source string, started time.Time, results []CaseResult) (Run, error) {
	run := Run{
		ID:          uuid.NewString(),
		StartedUnix: started.Unix(),
		Source:      source,
		Cases:       len(results),
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return Run{}, err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`INSERT INTO runs (id, started_unix, source, cases)
		VALUES (:id, :started_unix, :source, :cases)`, run); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO territory_days
		(run_id, case_number, name, days) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Run{}, err
	}
	defer stmt.Close()

	for _, c := range results {
		if _, err := tx.Exec(
			"INSERT INTO case_results (run_id, case_number, error) VALUES (?, ?, ?)",
			run.ID, c.Number, c.Error,
		); err != nil {
			return Run{}, fmt.Errorf("insert case %d: %w", c.Number, err)
		}
		for _, e := range c.Results {
			if _, err := stmt.Exec(run.ID, c.Number, e.Name, e.Days); err != nil {
				return Run{}, fmt.Errorf("insert case %d territory %s: %w", c.Number, e.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	slog.Debug("run saved", "run_id", run.ID, "cases", run.Cases)
	return run, nil
}

// RecentRuns returns the most recent N runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, started_unix, source, cases FROM runs ORDER BY started_unix DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// LoadRun returns a stored run and its case results in case order, with
// territories in report order.
func (db *DB) LoadRun(id string) (Run, []CaseResult, error) {
	var run Run
	if err := db.conn.Get(&run, "SELECT id, started_unix, source, cases FROM runs WHERE id = ?", id); err != nil {
		return Run{}, nil, fmt.Errorf("load run %s: %w", id, err)
	}

	var cases []CaseResult
	if err := db.conn.Select(&cases,
		"SELECT case_number, error FROM case_results WHERE run_id = ? ORDER BY case_number", id,
	); err != nil {
		return Run{}, nil, fmt.Errorf("load cases: %w", err)
	}

	var rows []struct {
		Number int    `db:"case_number"`
		Name   string `db:"name"`
		Days   int    `db:"days"`
	}
	if err := db.conn.Select(&rows,
		"SELECT case_number, name, days FROM territory_days WHERE run_id = ? ORDER BY case_number, days, name", id,
	); err != nil {
		return Run{}, nil, fmt.Errorf("load territory days: %w", err)
	}

	byNumber := make(map[int]*CaseResult, len(cases))
	for i := range cases {
		byNumber[cases[i].Number] = &cases[i]
	}
	for _, r := range rows {
		if c, ok := byNumber[r.Number]; ok {
			c.Results = append(c.Results, report.Entry{Name: r.Name, Days: r.Days})
		}
	}
	return run, cases, nil
}
