// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

// Package database provides read access to the SteamPulse game catalog
// warehouse.
//
// # Overview
//
// The dashboard reads two tables produced by the transformation layer:
//   - stg_games: one row per staged game (appid, name, price, genres, ...)
//   - mart_trends: a per-genre rollup (genre, total_games, avg_price, avg_rating)
//
// Queries are rendered by the query subpackage for one SQL dialect and
// executed by a Runner. Results are decoded into the models package types.
//
// # Backends
//
// Two Runner implementations exist:
//   - BigQuery (production): cloud.google.com/go/bigquery with named
//     query parameters
//   - DuckDB (local development and tests): github.com/duckdb/duckdb-go/v2,
//     an embedded database created and seeded at startup
//
// Both return rows as Row values keyed by column name. decode.go converts
// the driver-specific value types (int32/int64, *big.Rat, civil.Date,
// time.Time, []any) into model fields.
//
// # Architecture
//
//   - database.go: DB lifecycle and the warehouse query methods
//   - runner.go: Runner interface and Row type
//   - bigquery.go: BigQuery runner
//   - database_connection.go: DuckDB runner, connection string and pool
//   - database_schema.go: DuckDB table creation and catalog loading
//   - breaker.go: circuit breaker wrapping any Runner
//   - decode.go: Row to model conversion and validation
//   - seed.go: deterministic mock catalog and lake batch seeding
//   - database_utils.go: context deadlines
//   - errors.go: sentinel errors and close helpers
//
// # Thread Safety
//
// DB is safe for concurrent use. The dashboard endpoint issues several
// queries in parallel against one DB.
//
// # Timeouts
//
// Every call without a deadline gets the configured warehouse query
// timeout (see ensureContext).
package database
