package pipeline

import (
	"context"
	"database/sql"
	"log"
	"time"

	"jobfeed/internal/domain"
	"jobfeed/internal/export"
	"jobfeed/internal/store"
	"jobfeed/internal/transform"
)

type Fetcher interface {
	Fetch(ctx context.Context) (*domain.Feed, error)
}

type Uploader interface {
	Upload(ctx context.Context, localPath string) (key string, err error)
}

// Pipeline runs the four stages in order: fetch, transform, export,
// upload. The first failing stage aborts the rest; a file already
// written stays on disk even when the upload after it fails.
type Pipeline struct {
	Fetcher    Fetcher
	Uploader   Uploader
	OutFile    string
	SkipUpload bool

	// History is optional; recording failures are logged, never fatal.
	History *sql.DB
}

type Result struct {
	Rows      int
	File      string
	ObjectKey string
}

func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	started := time.Now().UTC()
	res, stage, err := p.run(ctx)
	p.record(started, stage, res, err)
	return res, err
}

func (p *Pipeline) run(ctx context.Context) (res Result, stage string, err error) {
	stage = "fetch"
	log.Printf("[fetch] reading the API...")
	feed, err := p.Fetcher.Fetch(ctx)
	if err != nil {
		log.Printf("[fetch] error: %v", err)
		return res, stage, err
	}

	stage = "transform"
	log.Printf("[transform] building the table...")
	table, err := transform.Table(feed)
	if err != nil {
		log.Printf("[transform] error: %v", err)
		return res, stage, err
	}
	res.Rows = len(table)

	stage = "export"
	log.Printf("[export] writing %d rows to %s", len(table), p.OutFile)
	if err := export.WriteCSV(table, p.OutFile); err != nil {
		log.Printf("[export] error: %v", err)
		return res, stage, err
	}
	res.File = p.OutFile

	if p.SkipUpload {
		log.Printf("[upload] skipped (dry run)")
		return res, stage, nil
	}

	stage = "upload"
	log.Printf("[upload] uploading %s...", p.OutFile)
	key, err := p.Uploader.Upload(ctx, p.OutFile)
	if err != nil {
		log.Printf("[upload] error: %v", err)
		return res, stage, err
	}
	res.ObjectKey = key

	return res, stage, nil
}

func (p *Pipeline) record(started time.Time, stage string, res Result, runErr error) {
	if p.History == nil {
		return
	}
	r := store.Run{
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Stage:      stage,
		Rows:       res.Rows,
		File:       res.File,
		ObjectKey:  res.ObjectKey,
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.RecordRun(ctx, p.History, r); err != nil {
		log.Printf("[history] record failed: %v", err)
	}
}
