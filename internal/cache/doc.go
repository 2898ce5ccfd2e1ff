// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package cache stores rendered API responses for the stale-after window the
dashboard advertises (Cache-Control: public, max-age=3600).

# Overview

The catalog only changes when the transformation layer rebuilds
stg_games and mart_trends, so identical requests inside the window can be
answered without touching the warehouse. Each BigQuery query is billed,
which makes this the main cost control of the service.

# Backends

  - Memory: per-process map with TTL expiration, a background sweep
    and an entry limit
  - Redis: shared across replicas via github.com/redis/go-redis/v9,
    expiration handled by Redis

Both implement Store. Values are opaque byte slices; the API layer stores
the encoded response body.

# Keys

GenerateKey hashes a namespace and its parameters into a compact key.
The Redis backend additionally prefixes keys with the configured
KeyPrefix so several deployments can share one Redis database.

# Metrics

Lookups are recorded as cache_hits_total and
cache_misses_total, labeled by backend.
*/
package cache
