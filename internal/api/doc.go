// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package api serves the SteamPulse analytics endpoints over HTTP.

Every route is a GET mounted under /api and, for older dashboard builds,
at the root as well. Handlers read from a Store (normally *database.DB),
re-aggregate with internal/derive where the view needs it, and write JSON
with goccy/go-json.

Files:

  - chi_router.go: route table and middleware stack
  - chi_middleware.go: CORS and rate limiting factories
  - handlers.go: Handler, Store and construction
  - handlers_core.go: /games, /genres, /stats
  - handlers_analytics.go: /dashboard, /hype, /publishers, /trends, /price-distribution
  - handlers_health.go: /health
  - requests.go: query parameter parsing, clamped never rejected
  - response.go: JSON and error writers
  - errors.go: mapping of warehouse errors to safe messages

Failure policy:

A failed warehouse call is logged once here with the request ID and turned
into the route's documented fallback. Most routes answer 500 {"error": ...};
/trends and /price-distribution answer 500 []. The dashboard degrades per
section and fails only when every section fails. Raw error text never
reaches a response body.
*/
package api
