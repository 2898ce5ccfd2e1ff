// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/models"
)

const (
	// cacheControl is the stale-after advisory sent with successful bodies.
	cacheControl = "public, max-age=3600"
	// noStore keeps errors, fallbacks and partial results out of caches.
	noStore = "no-store"
)

// respondJSON sends a JSON response with proper headers. Only 2xx bodies
// carry the cache advisory.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	cache := cacheControl
	if status < 200 || status >= 300 {
		cache = noStore
	}
	writeJSON(w, status, v, cache)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, cache string) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", cache)
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError logs err against the request and sends {"error": message}.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("API error")
	}
	respondJSON(w, status, models.ErrorResponse{Error: publicMessage(err, message)})
}

// respondEmptyList logs err and sends 500 []. Used by chart routes whose
// clients expect an array even on failure.
func respondEmptyList(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("path", r.URL.Path).
		Msg("API error, serving empty list")
	writeJSON(w, http.StatusInternalServerError, []struct{}{}, noStore)
}
