// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

// Package models defines the row and response shapes shared by the
// warehouse queries, the client-side rollups and the HTTP API.
//
// There is exactly one type per view. Whether a row was aggregated by the
// warehouse or recomputed in Go, it has the same fields and the same null
// policy:
//
//   - averages, medians and percentages over an empty set are nil (JSON null)
//   - counts and sums over an empty set are 0
//   - metacritic is nil when a title has no rating
//
// JSON field names are snake_case, matching the warehouse column names.
// Envelope fields (yearlyTrend, topGenres, lastUpdated, totalPages) are
// camelCase as served to the dashboard frontend.
package models
