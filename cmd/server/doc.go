// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package main is the entry point for the SteamPulse API server.

SteamPulse serves read-only analytics over a game catalog: dashboard
totals, a filtered game explorer, genre and publisher rankings, hype
scores and yearly trends. Every view is computed by the warehouse
(BigQuery in production, embedded DuckDB locally) and returned as JSON.

# Application Architecture

	RootSupervisor ("steampulse")
	├── DataSupervisor ("data-layer")
	│   └── Warehouse probe (periodic ping, uptime gauge)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml, .env and environment
 2. Logging: zerolog with JSON/console output modes
 3. Warehouse: BigQuery client or DuckDB (seeded from mock data or lake batches)
 4. Response cache: in-memory or Redis, optional
 5. HTTP router: Chi with CORS, rate limiting, compression and metrics
 6. Supervisor tree: Suture v4 with restart backoff

# Configuration

Common environment variables:

	WAREHOUSE_BACKEND=bigquery|duckdb
	GCP_PROJECT_ID=my-project
	BIGQUERY_DATASET=dbt_gsinha
	GCP_CREDENTIALS=/path/to/key.json
	HTTP_PORT=3000
	CACHE_ENABLED=true
	CACHE_BACKEND=memory|redis
	LOG_LEVEL=info

Local development against the embedded warehouse:

	export WAREHOUSE_BACKEND=duckdb
	export SEED_MOCK_DATA=true
	./steampulse

# Graceful Shutdown

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests, then the warehouse and cache connections are closed.
*/
package main
