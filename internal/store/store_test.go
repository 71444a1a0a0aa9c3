package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jobfeed/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "jobfeed.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestRecordAndRecentRuns(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	ok := store.Run{
		StartedAt:  base,
		FinishedAt: base.Add(3 * time.Second),
		Stage:      "upload",
		Rows:       20,
		File:       "jobs.csv",
		ObjectKey:  "data/jobs.csv",
	}
	failed := store.Run{
		StartedAt:  base.Add(time.Hour),
		FinishedAt: base.Add(time.Hour + time.Second),
		Stage:      "fetch",
		Error:      "fetch https://example.com: status 404",
	}

	if _, err := store.RecordRun(ctx, db.Pool, ok); err != nil {
		t.Fatalf("record ok run: %v", err)
	}
	if _, err := store.RecordRun(ctx, db.Pool, failed); err != nil {
		t.Fatalf("record failed run: %v", err)
	}

	runs, err := store.RecentRuns(ctx, db.Pool, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	// newest first
	if runs[0].Stage != "fetch" || runs[0].Error == "" {
		t.Errorf("runs[0] = %+v, want the failed fetch run", runs[0])
	}
	if runs[1].Stage != "upload" || runs[1].Rows != 20 || runs[1].ObjectKey != "data/jobs.csv" {
		t.Errorf("runs[1] = %+v, want the successful upload run", runs[1])
	}
	if !runs[1].StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, want %v", runs[1].StartedAt, base)
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobfeed.db")
	ctx := context.Background()

	db, err := store.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	r := store.Run{StartedAt: time.Now(), FinishedAt: time.Now(), Stage: "upload", Rows: 7}
	if _, err := store.RecordRun(ctx, db.Pool, r); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// a later invocation sees the earlier run
	db, err = store.Open(path)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatalf("migrate after reopen: %v", err)
	}
	runs, err := store.RecentRuns(ctx, db.Pool, 10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Rows != 7 {
		t.Errorf("got %+v, want the run recorded before reopen", runs)
	}
}

func TestRecentRuns_Limit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		r := store.Run{
			StartedAt:  time.Now().Add(time.Duration(i) * time.Minute),
			FinishedAt: time.Now().Add(time.Duration(i)*time.Minute + time.Second),
			Stage:      "upload",
		}
		if _, err := store.RecordRun(ctx, db.Pool, r); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, db.Pool, 3)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
}
