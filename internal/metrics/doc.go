// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package metrics holds the Prometheus collectors for the service.

Metrics are registered on the default registry at package init and are
exposed at /metrics by the API router.

# Available Metrics

Warehouse:
  - warehouse_query_duration_seconds (histogram): operation, backend
  - warehouse_query_errors_total (counter): operation, backend, error_type
  - warehouse_rows_returned_total (counter): operation, backend

API:
  - api_requests_total (counter): method, endpoint, status_code
  - api_request_duration_seconds (histogram): method, endpoint
  - api_active_requests (gauge)
  - api_rate_limit_hits_total (counter): endpoint
  - api_fallback_responses_total (counter): route, section

Response cache:
  - cache_hits_total, cache_misses_total, cache_errors_total (counter): cache_type
  - cache_entries (gauge), cache_evictions_total (counter): cache_type

Circuit breaker:
  - circuit_breaker_state (gauge): name. 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total (counter): name, result
  - circuit_breaker_consecutive_failures (gauge): name
  - circuit_breaker_state_transitions_total (counter): name, from_state, to_state

Raw lake:
  - lake_objects_total (counter): operation, result
  - lake_records_total (counter): operation

Error labels go through ErrorType so that error messages never become
label values.
*/
package metrics
