// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/derive"
	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/metrics"
	"github.com/tomtom215/steampulse/internal/models"
)

// Dashboard sections, as named in the errors map.
const (
	sectionStats       = "stats"
	sectionYearlyTrend = "yearlyTrend"
	sectionTopGenres   = "topGenres"

	dashboardSections = 3
)

// Dashboard handles GET /dashboard. Stats, yearly trend and top genres are
// fetched concurrently. A failed section keeps its empty value and is
// named in errors; only when all three fail does the route answer 500.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := models.DashboardResponse{
		YearlyTrend: []models.YearlyTrend{},
		TopGenres:   []models.GenreCount{},
		LastUpdated: h.now(),
	}

	var (
		mu       sync.Mutex
		failures = make(map[string]string)
	)
	fail := func(section string, err error) {
		logging.Ctx(ctx).Warn().Err(err).Str("section", section).Msg("Dashboard section failed")
		metrics.RecordFallback("/dashboard", section)
		mu.Lock()
		failures[section] = publicMessage(err, "failed to fetch "+section)
		mu.Unlock()
	}

	// Plain Group: a failing section must not cancel its siblings.
	var g errgroup.Group
	g.Go(func() error {
		stats, err := h.store.GetDashboardStats(ctx)
		if err != nil {
			fail(sectionStats, err)
			return nil
		}
		if stats != nil {
			resp.Stats = *stats
		}
		return nil
	})
	g.Go(func() error {
		trend, err := h.store.GetYearlyTrend(ctx)
		if err != nil {
			fail(sectionYearlyTrend, err)
			return nil
		}
		if trend != nil {
			resp.YearlyTrend = trend
		}
		return nil
	})
	g.Go(func() error {
		genres, err := h.store.GetTopGenres(ctx, query.TopGenresLimit)
		if err != nil {
			fail(sectionTopGenres, err)
			return nil
		}
		if genres != nil {
			resp.TopGenres = genres
		}
		return nil
	})
	_ = g.Wait()

	if len(failures) == dashboardSections {
		respondError(w, r, http.StatusInternalServerError, "failed to fetch dashboard data", errAllSectionsFailed)
		return
	}
	if len(failures) > 0 {
		resp.Errors = failures
		writeJSON(w, http.StatusOK, resp, noStore) // keep partial results out of caches
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Hype handles GET /hype?days=N: the hype ranking plus recency buckets.
func (h *Handler) Hype(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetHypeScores(r.Context(), h.hypeCutoff(r), query.HypeLimit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to fetch hype scores", err)
		return
	}
	if rows == nil {
		rows = []models.HypeScore{}
	}
	respondJSON(w, http.StatusOK, models.HypeResponse{
		All:        rows,
		Categories: derive.CategorizeHype(rows, h.now()),
	})
}

// Publishers handles GET /publishers: the publisher table plus insight lists.
func (h *Handler) Publishers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetPublisherStats(r.Context(), query.PublisherLimit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to fetch publishers", err)
		return
	}
	if rows == nil {
		rows = []models.PublisherStats{}
	}
	respondJSON(w, http.StatusOK, models.PublishersResponse{
		Publishers: rows,
		Insights:   derive.PublisherInsights(rows),
	})
}

// Trends handles GET /trends: the mart_trends genre rollup. Failure answers 500 [].
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetGenreTrends(r.Context(), query.GenreTrendsLimit)
	if err != nil {
		metrics.RecordFallback("/trends", "all")
		respondEmptyList(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.GenreStats{}
	}
	respondJSON(w, http.StatusOK, rows)
}

// PriceDistribution handles GET /price-distribution. Failure answers 500 [].
func (h *Handler) PriceDistribution(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.GetPriceDistribution(r.Context())
	if err != nil {
		metrics.RecordFallback("/price-distribution", "all")
		respondEmptyList(w, r, err)
		return
	}
	if rows == nil {
		rows = []models.PriceBucket{}
	}
	respondJSON(w, http.StatusOK, rows)
}
