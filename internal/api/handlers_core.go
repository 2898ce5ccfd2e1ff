// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"net/http"
)

// Games handles GET /games: the filtered, paginated explorer table.
//
// Query params: page, limit, search, genre, minPrice, maxPrice, minRating, isFree.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	filter, page := parseGamesRequest(r, h.opts)

	result, err := h.store.SearchGames(r.Context(), filter, page)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to fetch games", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Genres handles GET /genres and its /genre alias: distinct primary genres, alphabetical.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.store.ListGenres(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to fetch genres", err)
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

// Stats handles GET /stats, the legacy three-number summary.
// The dashboard route supersedes it.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.GetCatalogSummary(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to fetch stats", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
