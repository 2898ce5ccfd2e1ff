// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/models"
)

// Store is the read side of the warehouse. *database.DB implements it.
type Store interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	GetYearlyTrend(ctx context.Context) ([]models.YearlyTrend, error)
	GetTopGenres(ctx context.Context, limit int) ([]models.GenreCount, error)
	ListGenres(ctx context.Context) ([]models.GenreName, error)
	SearchGames(ctx context.Context, filter models.GameFilter, page query.Page) (*models.GamesPage, error)
	GetHypeScores(ctx context.Context, cutoff civil.Date, limit int) ([]models.HypeScore, error)
	GetPublisherStats(ctx context.Context, limit int) ([]models.PublisherStats, error)
	GetGenreTrends(ctx context.Context, limit int) ([]models.GenreStats, error)
	GetCatalogSummary(ctx context.Context) (*models.CatalogSummary, error)
	GetPriceDistribution(ctx context.Context) ([]models.PriceBucket, error)
	Ping(ctx context.Context) error
	Backend() string
	CircuitState() string
}

// Options tune request parsing.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	// HypeCutoff is the earliest release date ranked by /hype without ?days.
	HypeCutoff civil.Date
	// Now is the clock for hype recency and dashboard timestamps.
	Now func() time.Time
}

// DefaultOptions returns the built-in paging and hype window.
func DefaultOptions() Options {
	cutoff, _ := civil.ParseDate(query.DefaultHypeCutoff)
	return Options{
		DefaultPageSize: query.DefaultPageSize,
		MaxPageSize:     query.ExplorerPageSize,
		HypeCutoff:      cutoff,
		Now:             time.Now,
	}
}

// OptionsFromConfig maps the api config section onto Options. Invalid
// values keep their defaults.
func OptionsFromConfig(cfg *config.APIConfig) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.DefaultPageSize > 0 {
		opts.DefaultPageSize = cfg.DefaultPageSize
	}
	if cfg.MaxPageSize > 0 {
		opts.MaxPageSize = cfg.MaxPageSize
	}
	if cfg.HypeCutoff != "" {
		if d, err := civil.ParseDate(cfg.HypeCutoff); err == nil {
			opts.HypeCutoff = d
		} else {
			logging.Warn().Str("hype_cutoff", cfg.HypeCutoff).Msg("Ignoring invalid hype cutoff")
		}
	}
	return opts
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_core.go: games, genres, legacy stats
//   - handlers_analytics.go: dashboard, hype, publishers, trends, price distribution
//   - handlers_health.go: health
type Handler struct {
	store Store
	opts  Options
}

// NewHandler creates a handler over store.
func NewHandler(store Store, opts Options) *Handler {
	def := DefaultOptions()
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = def.DefaultPageSize
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = max(def.MaxPageSize, opts.DefaultPageSize)
	}
	if opts.HypeCutoff.IsZero() {
		opts.HypeCutoff = def.HypeCutoff
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Handler{store: store, opts: opts}
}

func (h *Handler) now() time.Time {
	return h.opts.Now().UTC()
}
