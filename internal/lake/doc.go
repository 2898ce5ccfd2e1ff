// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package lake reads and repairs the raw data lake that feeds stg_games.

The ingest job writes Steam appdetails payloads in batches of ten, one file
per batch (batch_<index>.json), first to a local data directory and then
to gs://<bucket>/raw_layer/<date>/. Early batches were written as a single
JSON array, which BigQuery external tables cannot read; Repair rewrites
them as newline-delimited JSON under raw_layer/repaired/.

# Formats

ReadRecords accepts both encodings and returns the records untouched, so a
repaired file carries every field of the original payload:

	[{"steam_appid": 10, ...}, {"steam_appid": 20, ...}]   // JSON array
	{"steam_appid": 10, ...}                                // NDJSON
	{"steam_appid": 20, ...}

# Staging

Stage maps one appdetails payload onto a models.Game the same way the
warehouse staging model does: price_overview.final is in paise and becomes
rupees, the first genre is the primary genre, the first publisher is the
publisher, and recommendations.total is the review count. Non-game
entries and entries without an id or name are skipped.

# Sinks

Repair writes through a Sink: Bucket for Cloud Storage, DirSink for a
local dry run.
*/
package lake
