// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"net/http"

	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/models"
)

// Health statuses.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Health handles GET /health. It pings the warehouse and answers 503
// when the ping fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:    statusHealthy,
		Backend:   h.store.Backend(),
		Circuit:   h.store.CircuitState(),
		Timestamp: h.now(),
	}

	status := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Warehouse health check failed")
		resp.Status = statusUnhealthy
		resp.Circuit = h.store.CircuitState()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp, noStore)
}
