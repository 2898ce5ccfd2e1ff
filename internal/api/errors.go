// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"context"
	"errors"

	"github.com/tomtom215/steampulse/internal/database"
)

// errAllSectionsFailed is logged when no dashboard section could be built.
var errAllSectionsFailed = errors.New("all dashboard sections failed")

// publicMessage returns a client-safe description of err.
func publicMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, database.ErrCircuitOpen):
		return "warehouse temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "warehouse query timed out"
	default:
		return fallback
	}
}
