package store

import (
	"context"
	"database/sql"
	"time"
)

// Run is one recorded pipeline invocation. Stage is the last stage that
// ran (fetch/transform/export/upload); Error is empty on success.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Stage      string
	Rows       int
	File       string
	ObjectKey  string
	Error      string
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  started_at TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  stage TEXT NOT NULL,
  rows_out INTEGER NOT NULL DEFAULT 0,
  file TEXT NOT NULL DEFAULT '',
  object_key TEXT NOT NULL DEFAULT '',
  error TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_runs_started_at
ON runs(started_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func RecordRun(ctx context.Context, db *sql.DB, r Run) (int64, error) {
	res, err := db.ExecContext(ctx, `
INSERT INTO runs(started_at, finished_at, stage, rows_out, file, object_key, error)
VALUES(?,?,?,?,?,?,?);`,
		r.StartedAt.UTC().Format(time.RFC3339),
		r.FinishedAt.UTC().Format(time.RFC3339),
		r.Stage, r.Rows, r.File, r.ObjectKey, r.Error,
	)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func RecentRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, started_at, finished_at, stage, rows_out, file, object_key, error
FROM runs
ORDER BY started_at DESC, id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Stage, &r.Rows, &r.File, &r.ObjectKey, &r.Error); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
