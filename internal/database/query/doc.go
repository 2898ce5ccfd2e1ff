// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

// Package query is the catalog of analytic queries served by the dashboard.
//
// Every query is a pure function from parameters to a Spec: the query text
// rendered for one warehouse Dialect plus the values bound to it. Nothing
// here talks to a warehouse; the database package runs Specs.
//
// # Overview
//
//	cat, err := query.NewCatalog(query.BigQuery{Project: "p", Dataset: "d"}, "stg_games", "mart_trends")
//	spec := cat.SearchGames(models.GameFilter{Search: "portal"}, query.NewPage(2, 20, 20, 100))
//	// spec.Text:   SELECT ... WHERE LOWER(name) LIKE @search ... LIMIT @limit OFFSET @offset
//	// spec.Params: [{search %portal%} {limit 20} {offset 20}]
//
// # Dialects
//
// BigQuery renders named @parameters and backquoted project.dataset.table
// identifiers. DuckDB renders positional ? parameters and double-quoted
// identifiers; Spec.Args returns the values in placeholder order.
//
// Function differences (conditional counts, date differences, medians,
// integer sums) are hidden behind the Dialect interface so each catalog
// query is written once.
//
// # SQL Injection Prevention
//
// User input (search terms, genres, price bounds, pages, limits, dates)
// only ever reaches the warehouse as a bound parameter. Table names come
// from configuration and are checked by NewCatalog before they are quoted.
//
// # Thread Safety
//
// A Catalog is immutable and safe for concurrent use. WhereBuilder and
// Binder instances are per query and not thread-safe.
package query
