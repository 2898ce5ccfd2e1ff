// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

// Command lakerepair rewrites local appdetails batch files (JSON arrays or
// concatenated objects) as NDJSON and uploads them to the repaired prefix
// of the raw lake bucket, or to a local directory with -out.
//
//	lakerepair -dir data
//	lakerepair -dir data -out /tmp/repaired
//	lakerepair -dir data -dry-run
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/lake"
	"github.com/tomtom215/steampulse/internal/logging"
)

// countingSink discards objects and remembers their sizes.
type countingSink struct {
	mu    sync.Mutex
	sizes map[string]int
}

func (s *countingSink) Put(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizes[name] = len(data)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    "console",
		Timestamp: true,
		Output:    os.Stderr,
	})

	var (
		dir    string
		out    string
		bucket string
		prefix string
		dryRun bool
	)
	flag.StringVar(&dir, "dir", cfg.Lake.LocalDir, "directory holding batch_*.json files")
	flag.StringVar(&out, "out", "", "write repaired files under this local directory instead of the bucket")
	flag.StringVar(&bucket, "bucket", cfg.Lake.Bucket, "raw lake bucket")
	flag.StringVar(&prefix, "prefix", cfg.Lake.RepairedPrefix, "object prefix for repaired files")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and convert without writing anything")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, dir, out, bucket, prefix, dryRun); err != nil {
		logging.Error().Err(err).Msg("Repair failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dir, out, bucket, prefix string, dryRun bool) error {
	var sink lake.Sink
	switch {
	case dryRun:
		sink = &countingSink{sizes: map[string]int{}}
	case out != "":
		sink = lake.DirSink{Root: out}
	default:
		b, err := lake.NewBucket(ctx, bucket, cfg.Credentials().ClientOptions()...)
		if err != nil {
			return err
		}
		defer func() {
			if err := b.Close(); err != nil {
				logging.Warn().Err(err).Msg("Error closing storage client")
			}
		}()
		sink = b
	}

	report, err := lake.Repair(ctx, dir, sink, prefix)
	if err != nil {
		return err
	}

	if cs, ok := sink.(*countingSink); ok {
		for name, size := range cs.sizes {
			fmt.Printf("[dry-run] %s (%d bytes)\n", name, size)
		}
	}
	for name, ferr := range report.Failed {
		fmt.Printf("FAILED %s: %v\n", name, ferr)
	}
	fmt.Printf("repaired %d files, %d records, %d failed\n", len(report.Repaired), report.Records, len(report.Failed))
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d files failed", len(report.Failed))
	}
	return nil
}
