// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"wrapped deadline", fmt.Errorf("dashboard stats: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"breaker open", gobreaker.ErrOpenState, "circuit_open"},
		{"breaker half-open", fmt.Errorf("run: %w", gobreaker.ErrTooManyRequests), "circuit_open"},
		{"anything else", errors.New("Syntax error at [1:8]"), "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorType(tt.err); got != tt.want {
				t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestRecordWarehouseQuery(t *testing.T) {
	before := testutil.ToFloat64(WarehouseRowsReturned.WithLabelValues("metrics_test_rows", "duckdb"))
	RecordWarehouseQuery("metrics_test_rows", "duckdb", 5*time.Millisecond, 7, nil)
	if got := testutil.ToFloat64(WarehouseRowsReturned.WithLabelValues("metrics_test_rows", "duckdb")); got-before != 7 {
		t.Errorf("rows counter increased by %v, want 7", got-before)
	}

	errBefore := testutil.ToFloat64(WarehouseQueryErrors.WithLabelValues("metrics_test_err", "bigquery", "timeout"))
	RecordWarehouseQuery("metrics_test_err", "bigquery", time.Second, 0, context.DeadlineExceeded)
	if got := testutil.ToFloat64(WarehouseQueryErrors.WithLabelValues("metrics_test_err", "bigquery", "timeout")); got-errBefore != 1 {
		t.Errorf("error counter increased by %v, want 1", got-errBefore)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("metrics_test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("metrics_test"))

	RecordCacheLookup("metrics_test", true)
	RecordCacheLookup("metrics_test", false)
	RecordCacheLookup("metrics_test", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("metrics_test")) - hits; got != 1 {
		t.Errorf("hits increased by %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("metrics_test")) - misses; got != 2 {
		t.Errorf("misses increased by %v, want 2", got)
	}
}

func TestRecordLakeObject(t *testing.T) {
	ok := testutil.ToFloat64(LakeObjects.WithLabelValues("metrics_test", "success"))
	failed := testutil.ToFloat64(LakeObjects.WithLabelValues("metrics_test", "failure"))

	RecordLakeObject("metrics_test", 10, nil)
	RecordLakeObject("metrics_test", 0, errors.New("bad batch"))

	if got := testutil.ToFloat64(LakeObjects.WithLabelValues("metrics_test", "success")) - ok; got != 1 {
		t.Errorf("success increased by %v, want 1", got)
	}
	if got := testutil.ToFloat64(LakeObjects.WithLabelValues("metrics_test", "failure")) - failed; got != 1 {
		t.Errorf("failure increased by %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestBreakerStateValue(t *testing.T) {
	tests := map[gobreaker.State]float64{
		gobreaker.StateClosed:   0,
		gobreaker.StateHalfOpen: 1,
		gobreaker.StateOpen:     2,
		gobreaker.State(99):     -1,
	}
	for state, want := range tests {
		if got := BreakerStateValue(state); got != want {
			t.Errorf("BreakerStateValue(%v) = %v, want %v", state, got, want)
		}
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordWarehouseQuery("TEST", "duckdb", time.Millisecond, 1, nil)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)
	RecordFallback("/api/trends", "all")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
