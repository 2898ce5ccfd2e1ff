// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package middleware provides HTTP middleware components for the API server.

All middleware has the func(http.Handler) http.Handler shape so it mounts
directly on a chi router.

Key Components:

  - RequestID: reuses or generates an X-Request-ID and stores it for logging
  - PrometheusMetrics: request count, latency and in-flight gauges labelled by route pattern
  - AccessLog: one structured log line per request, warn level above a slow threshold
  - Compression: gzip for clients that send Accept-Encoding: gzip
  - ResponseCache: serves repeated GETs from a cache.Store (memory or Redis)

Middleware Stack:

The router applies them in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.Compression)
	r.With(middleware.ResponseCache(store, ttl)).Get("/games", h.Games)

ResponseCache sits inside Compression so stored bodies are uncompressed
and can be served to any client.

Thread Safety:

All middleware is safe for concurrent use. Compression pools gzip writers;
the other components keep per-request state only.

See Also:

  - internal/api: router and handlers wrapped by this middleware
  - internal/cache: Store implementations used by ResponseCache
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
