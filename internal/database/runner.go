// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"

	"github.com/tomtom215/steampulse/internal/database/query"
)

// Row is one result row keyed by column name. Values are whatever the
// backend driver produced; see decode.go.
type Row map[string]any

// Runner executes rendered queries against a warehouse.
type Runner interface {
	Run(ctx context.Context, spec query.Spec) ([]Row, error)
	Close() error
}
