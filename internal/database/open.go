// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/logging"
)

// Open connects to the configured warehouse. The embedded DuckDB backend
// is created and seeded here.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	wh := cfg.Warehouse

	var (
		dialect query.Dialect
		runner  Runner
	)
	switch wh.Backend {
	case config.BackendBigQuery:
		dialect = query.BigQuery{Project: wh.ProjectID, Dataset: wh.Dataset}
	case config.BackendDuckDB:
		dialect = query.DuckDB{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, wh.Backend)
	}

	catalog, err := query.NewCatalog(dialect, wh.GamesTable, wh.TrendsTable)
	if err != nil {
		return nil, err
	}

	switch wh.Backend {
	case config.BackendBigQuery:
		creds := cfg.Credentials()
		logging.Info().
			Str("project", wh.ProjectID).
			Str("dataset", wh.Dataset).
			Str("credentials", creds.Source).
			Msg("Connecting to BigQuery")
		runner, err = NewBigQueryRunner(ctx, wh.ProjectID, wh.Location, creds.ClientOptions()...)
		if err != nil {
			return nil, err
		}
	case config.BackendDuckDB:
		duck, err := OpenDuckDB(ctx, &cfg.Database, wh.GamesTable, wh.TrendsTable)
		if err != nil {
			return nil, err
		}
		if err := seedCatalog(ctx, duck, &cfg.Database, civil.DateOf(time.Now().UTC())); err != nil {
			closeQuietly(duck)
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		runner = duck
	}

	if wh.BreakerEnabled {
		runner = newBreakerRunner(runner, breakerSettings(wh.Backend+"-warehouse"))
	}

	return New(runner, catalog, Options{QueryTimeout: wh.QueryTimeout}), nil
}
