package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"jobfeed/internal/config"
	"jobfeed/internal/fetch"
	"jobfeed/internal/pipeline"
	"jobfeed/internal/secrets"
	"jobfeed/internal/store"
	"jobfeed/internal/upload"
)

func main() {
	var (
		dataDirFlag = flag.String("data-dir", "", "data dir for config, output and history (default $JOBFEED_DATA_DIR or .)")
		cfgFlag     = flag.String("config", "", "explicit config path (skips the first-run bootstrap)")
		historyN    = flag.Int("history", 0, "print the last N runs and exit")
		dryRun      = flag.Bool("dry-run", false, "stop after writing the CSV; skip the upload")
	)
	flag.Parse()

	dataDir := *dataDirFlag
	if dataDir == "" {
		dataDir = os.Getenv("JOBFEED_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfgPath := *cfgFlag
	if cfgPath == "" {
		var err error
		cfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if err := res.Err(); err != nil {
		log.Fatalf("[config] %v", err)
	}

	db, err := store.Open(filepath.Join(dataDir, "jobfeed.db"))
	if err != nil {
		log.Fatalf("open history db: %v", err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatalf("migrate history db: %v", err)
	}

	if *historyN > 0 {
		printHistory(db, *historyN)
		return
	}

	// One run at a time per data dir; the CSV and the history db are not
	// safe against two concurrent writers.
	lock := flock.New(filepath.Join(dataDir, "jobfeed.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock %s: %v", lock.Path(), err)
	}
	if !locked {
		log.Fatalf("another run is already in progress (lock held on %s)", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	p := &pipeline.Pipeline{
		Fetcher:    fetch.New(cfg.API.URL, fetch.NewLimiter(1.0, 2)),
		OutFile:    filepath.Join(dataDir, cfg.Output.File),
		SkipUpload: *dryRun,
		History:    db.Pool,
	}
	if !*dryRun {
		creds, err := secrets.LoadAWSCredentials()
		if err != nil {
			log.Fatalf("[config] %v", err)
		}
		p.Uploader = upload.New(cfg.AWS.Bucket, cfg.AWS.Folder, cfg.AWS.Region,
			creds.AccessKey, creds.SecretAccessKey)
	}

	out, err := p.Run(context.Background())
	if err != nil {
		log.Fatalf("[jobfeed] run failed: %v", err)
	}
	if *dryRun {
		log.Printf("[jobfeed] done: %d rows written to %s (upload skipped)", out.Rows, out.File)
		return
	}
	log.Printf("[jobfeed] done: %d rows uploaded to s3://%s/%s", out.Rows, cfg.AWS.Bucket, out.ObjectKey)
}

func printHistory(db *store.DB, n int) {
	runs, err := store.RecentRuns(context.Background(), db.Pool, n)
	if err != nil {
		log.Fatalf("read history: %v", err)
	}
	for _, r := range runs {
		status := "ok"
		if r.Error != "" {
			status = "failed at " + r.Stage + ": " + r.Error
		}
		fmt.Printf("%s  rows=%d  file=%s  key=%s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Rows, r.File, r.ObjectKey, status)
	}
}
