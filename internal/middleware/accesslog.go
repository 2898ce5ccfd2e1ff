// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/steampulse/internal/logging"
)

// DefaultSlowRequestThreshold marks requests worth a warning.
const DefaultSlowRequestThreshold = time.Second

// AccessLog logs one line per request. Requests slower than threshold
// are logged at warn level, 5xx responses at error level.
func AccessLog(threshold time.Duration) func(http.Handler) http.Handler {
	if threshold <= 0 {
		threshold = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			log := logging.Ctx(r.Context())
			event, msg := log.Debug(), "request"
			switch {
			case sw.status >= http.StatusInternalServerError:
				event = log.Error()
			case duration > threshold:
				event, msg = log.Warn().Dur("threshold", threshold), "slow request"
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", sw.status).
				Int("bytes", sw.bytes).
				Dur("duration", duration).
				Msg(msg)
		})
	}
}
