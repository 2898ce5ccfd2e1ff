// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package services adapts SteamPulse components to suture.Service.

HTTPServerService turns the blocking ListenAndServe of *http.Server into a
context-aware Serve with graceful shutdown. WarehouseProbe pings the
warehouse on an interval, logs health transitions and keeps the uptime
gauge current.

Every service implements fmt.Stringer so suture can name it in logs.
*/
package services
