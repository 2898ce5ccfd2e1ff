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
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/metrics"
	"github.com/tomtom215/steampulse/internal/models"
)

// Options tune a DB.
type Options struct {
	// QueryTimeout applies to calls whose context has no deadline.
	QueryTimeout time.Duration
	// Now is the clock used for the trend window and hype scores.
	Now func() time.Time
}

// DB answers the dashboard's catalog questions from a warehouse.
type DB struct {
	runner  Runner
	breaker *breakerRunner
	catalog *query.Catalog
	backend string
	timeout time.Duration
	now     func() time.Time
}

// New builds a DB over runner. Queries are rendered by catalog.
func New(runner Runner, catalog *query.Catalog, opts Options) *DB {
	db := &DB{
		runner:  runner,
		catalog: catalog,
		backend: catalog.Dialect().Name(),
		timeout: opts.QueryTimeout,
		now:     opts.Now,
	}
	if db.now == nil {
		db.now = time.Now
	}
	if br, ok := runner.(*breakerRunner); ok {
		db.breaker = br
	}
	return db
}

// run executes spec with the query timeout and records metrics under op.
func (db *DB) run(ctx context.Context, op string, spec query.Spec) ([]Row, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.runner.Run(ctx, spec)
	metrics.RecordWarehouseQuery(op, db.backend, time.Since(start), len(rows), err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

// today is the current UTC calendar date.
func (db *DB) today() civil.Date {
	return civil.DateOf(db.now().UTC())
}

func queryAll[T any](ctx context.Context, db *DB, op string, spec query.Spec, decode func(*rowReader) T) ([]T, error) {
	rows, err := db.run(ctx, op, spec)
	if err != nil {
		return nil, err
	}
	out, err := decodeRows(rows, decode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// queryOne decodes the first row. An aggregate over an empty table still
// returns one row, so no rows reads as the zero value.
func queryOne[T any](ctx context.Context, db *DB, op string, spec query.Spec, decode func(*rowReader) T) (*T, error) {
	rows, err := queryAll(ctx, db, op, spec, decode)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return new(T), nil
	}
	return &rows[0], nil
}

// GetDashboardStats returns the catalog KPIs.
func (db *DB) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return queryOne(ctx, db, "dashboard_stats", db.catalog.DashboardStats(), decodeDashboardStats)
}

// GetYearlyTrend returns per-year counts from the first trend year to the
// current year.
func (db *DB) GetYearlyTrend(ctx context.Context) ([]models.YearlyTrend, error) {
	return queryAll(ctx, db, "yearly_trend", db.catalog.YearlyTrend(db.now().UTC().Year()), decodeYearlyTrend)
}

// GetTopGenres returns the largest primary genres.
func (db *DB) GetTopGenres(ctx context.Context, limit int) ([]models.GenreCount, error) {
	return queryAll(ctx, db, "top_genres", db.catalog.TopGenres(limit), decodeGenreCount)
}

// ListGenres returns every primary genre, alphabetical.
func (db *DB) ListGenres(ctx context.Context) ([]models.GenreName, error) {
	return queryAll(ctx, db, "genre_list", db.catalog.GenreList(), decodeGenreName)
}

// SearchGames returns one page of the explorer table. The page rows and
// the total are fetched concurrently.
func (db *DB) SearchGames(ctx context.Context, filter models.GameFilter, page query.Page) (*models.GamesPage, error) {
	var (
		games []models.Game
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		games, err = queryAll(gctx, db, "search_games", db.catalog.SearchGames(filter, page), decodeGame)
		return err
	})
	g.Go(func() error {
		count, err := queryOne(gctx, db, "count_games", db.catalog.CountGames(filter), decodeMatchCount)
		if err != nil {
			return err
		}
		total = count.Total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.GamesPage{
		Data:       games,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Size,
		TotalPages: page.TotalPages(total),
	}, nil
}

// GetHypeScores ranks games released on or after cutoff by reviews per
// day since release, as of today.
func (db *DB) GetHypeScores(ctx context.Context, cutoff civil.Date, limit int) ([]models.HypeScore, error) {
	return queryAll(ctx, db, "hype_scores", db.catalog.HypeScores(cutoff, db.today(), limit), decodeHypeScore)
}

// GetPublisherStats returns the largest publishers.
func (db *DB) GetPublisherStats(ctx context.Context, limit int) ([]models.PublisherStats, error) {
	return queryAll(ctx, db, "publisher_stats", db.catalog.PublisherStats(limit), decodePublisherStats)
}

// GetGenreTrends reads the precomputed per-genre rollup.
func (db *DB) GetGenreTrends(ctx context.Context, limit int) ([]models.GenreStats, error) {
	return queryAll(ctx, db, "genre_trends", db.catalog.GenreTrends(limit), decodeGenreStats)
}

// GetCatalogSummary returns total games, free games and average rating.
func (db *DB) GetCatalogSummary(ctx context.Context) (*models.CatalogSummary, error) {
	return queryOne(ctx, db, "catalog_summary", db.catalog.CatalogSummary(), decodeCatalogSummary)
}

// GetPriceDistribution counts games per price band. Empty bands are omitted.
func (db *DB) GetPriceDistribution(ctx context.Context) ([]models.PriceBucket, error) {
	return queryAll(ctx, db, "price_distribution", db.catalog.PriceDistribution(), decodePriceBucket)
}

// Ping checks the warehouse answers a trivial query.
func (db *DB) Ping(ctx context.Context) error {
	_, err := db.run(ctx, "ping", db.catalog.Ping())
	return err
}

// Backend returns the warehouse dialect name: bigquery or duckdb.
func (db *DB) Backend() string {
	return db.backend
}

// CircuitState returns the breaker state, or "disabled" without one.
func (db *DB) CircuitState() string {
	if db.breaker == nil {
		return "disabled"
	}
	return db.breaker.State()
}

// Close releases the warehouse client.
func (db *DB) Close() error {
	return db.runner.Close()
}
