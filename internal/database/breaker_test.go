// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/metrics"
)

// fakeRunner returns err for every call and counts calls.
type fakeRunner struct {
	calls atomic.Int32
	err   error
	rows  []Row
}

func (f *fakeRunner) Run(_ context.Context, _ query.Spec) ([]Row, error) {
	f.calls.Add(1)
	return f.rows, f.err
}

func (f *fakeRunner) Close() error { return nil }

func TestBreakerOpensAfterFailures(t *testing.T) {
	next := &fakeRunner{err: errors.New("bigquery: 503 backend error")}
	settings := breakerSettings("test-breaker-open")
	settings.Timeout = time.Hour
	b := newBreakerRunner(next, settings)

	for range 10 {
		if _, err := b.Run(context.Background(), query.Spec{}); errors.Is(err, ErrCircuitOpen) {
			t.Fatal("breaker opened before reaching the minimum request count")
		}
	}
	if b.State() != "open" {
		t.Fatalf("State = %s, want open", b.State())
	}

	_, err := b.Run(context.Background(), query.Spec{})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if metrics.ErrorType(err) != "circuit_open" {
		t.Errorf("ErrorType = %q, want circuit_open", metrics.ErrorType(err))
	}
	if next.calls.Load() != 10 {
		t.Errorf("rejected call reached the warehouse: %d calls", next.calls.Load())
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-breaker-open")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestBreakerIgnoresCanceledRequests(t *testing.T) {
	next := &fakeRunner{err: context.Canceled}
	b := newBreakerRunner(next, breakerSettings("test-breaker-canceled"))

	for range 20 {
		_, _ = b.Run(context.Background(), query.Spec{})
	}
	if b.State() != "closed" {
		t.Errorf("State = %s, want closed", b.State())
	}
}

func TestBreakerPassesRowsThrough(t *testing.T) {
	next := &fakeRunner{rows: []Row{{"ok": int64(1)}}}
	b := newBreakerRunner(next, breakerSettings("test-breaker-pass"))

	catalog, err := query.NewCatalog(query.DuckDB{}, "stg_games", "mart_trends")
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	db := New(b, catalog, Options{})
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if db.CircuitState() != "closed" {
		t.Errorf("CircuitState = %s, want closed", db.CircuitState())
	}
}
