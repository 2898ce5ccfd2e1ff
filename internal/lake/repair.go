// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package lake

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/metrics"
)

// repairConcurrency bounds parallel uploads.
const repairConcurrency = 4

// RepairReport lists what Repair did per file.
type RepairReport struct {
	Repaired []string
	Records  int
	Failed   map[string]error
}

// BatchFiles returns the *.json and *.ndjson files directly under dir, sorted.
func BatchFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.ndjson"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return files, nil
}

// Repair rewrites every batch file in dir as NDJSON and puts it at
// prefix/<filename>. A file that fails is recorded and the rest continue.
// The returned error is non-nil only when dir cannot be listed or ctx ends.
func Repair(ctx context.Context, dir string, sink Sink, prefix string) (*RepairReport, error) {
	files, err := BatchFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list batches in %s: %w", dir, err)
	}
	logging.Info().Int("files", len(files)).Str("dir", dir).Msg("Repairing local batches")

	report := &RepairReport{Repaired: []string{}, Failed: map[string]error{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(repairConcurrency)
	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name := filepath.Base(file)
			n, err := repairFile(gctx, file, sink, path.Join(prefix, name))
			metrics.RecordLakeObject("repair", n, err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logging.Warn().Err(err).Str("file", name).Msg("Failed to repair batch")
				report.Failed[name] = err
				return nil
			}
			logging.Debug().Str("file", name).Int("records", n).Msg("Repaired batch")
			report.Repaired = append(report.Repaired, name)
			report.Records += n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	slices.Sort(report.Repaired)
	logging.Info().
		Int("repaired", len(report.Repaired)).
		Int("failed", len(report.Failed)).
		Int("records", report.Records).
		Msg("Repair complete")
	return report, nil
}

func repairFile(ctx context.Context, file string, sink Sink, object string) (int, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, records); err != nil {
		return 0, err
	}
	if err := sink.Put(ctx, object, buf.Bytes()); err != nil {
		return 0, err
	}
	return len(records), nil
}

// LoadDir reads every batch file in dir. Staging is left to the caller.
func LoadDir(dir string) ([]AppDetails, error) {
	files, err := BatchFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list batches in %s: %w", dir, err)
	}

	all := []AppDetails{}
	for _, file := range files {
		details, err := loadFile(file)
		metrics.RecordLakeObject("seed", len(details), err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(file), err)
		}
		all = append(all, details...)
	}
	return all, nil
}

func loadFile(file string) ([]AppDetails, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, err
	}
	return DecodeAppDetails(records)
}
