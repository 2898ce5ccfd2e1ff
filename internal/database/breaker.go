// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/metrics"
)

// breakerRunner wraps a Runner with a circuit breaker so a failing
// warehouse is not hammered by every dashboard refresh.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout. Tests that need deterministic behavior should drive the
// wrapped runner directly or use breakerSettings with short durations.
type breakerRunner struct {
	next Runner
	cb   *gobreaker.CircuitBreaker[[]Row]
	name string
}

// breakerSettings is the production configuration:
//   - Max 3 requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening warehouse circuit")
			}

			return shouldTrip
		},

		// A client hanging up is not a warehouse failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.BreakerStateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	}
}

func newBreakerRunner(next Runner, settings gobreaker.Settings) *breakerRunner {
	metrics.CircuitBreakerState.WithLabelValues(settings.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(settings.Name).Set(0)

	return &breakerRunner{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]Row](settings),
		name: settings.Name,
	}
}

// Run implements Runner.
func (b *breakerRunner) Run(ctx context.Context, spec query.Spec) ([]Row, error) {
	rows, err := b.cb.Execute(func() ([]Row, error) {
		return b.next.Run(ctx, spec)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Warehouse query rejected")
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return rows, nil
}

// State returns the breaker state name: closed, half-open or open.
func (b *breakerRunner) State() string {
	return b.cb.State().String()
}

// Close implements Runner.
func (b *breakerRunner) Close() error {
	return b.next.Close()
}
