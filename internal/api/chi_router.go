// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/steampulse/internal/cache"
	"github.com/tomtom215/steampulse/internal/middleware"
	"github.com/tomtom215/steampulse/internal/models"
)

// RouterOptions configure the cross-cutting layers of the router.
type RouterOptions struct {
	// Cache stores GET responses of the data routes. Nil disables it.
	Cache    cache.Store
	CacheTTL time.Duration
	// SlowRequest is the access log warn threshold.
	SlowRequest time.Duration
}

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	opts          RouterOptions
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware, opts RouterOptions) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	return &Router{handler: handler, chiMiddleware: mw, opts: opts}
}

// SetupChi configures all HTTP routes. Data routes are served under /api
// and again at the root for older clients.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog(router.opts.SlowRequest))
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "method not allowed"})
	})

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", router.handler.Health)

	// One limiter and one cache layer shared by both mounts.
	limiter := router.chiMiddleware.RateLimit()
	cached := middleware.ResponseCache(router.opts.Cache, router.opts.CacheTTL)
	data := func(r chi.Router) {
		r.Use(limiter)
		r.Use(middleware.Compression)
		r.Use(cached)
		router.dataRoutes(r)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", router.handler.Health)
		r.Group(data)
	})
	r.Group(data)

	return r
}

// dataRoutes registers the catalog views.
func (router *Router) dataRoutes(r chi.Router) {
	h := router.handler
	r.Get("/dashboard", h.Dashboard)
	r.Get("/games", h.Games)
	r.Get("/genres", h.Genres)
	r.Get("/genre", h.Genres)
	r.Get("/hype", h.Hype)
	r.Get("/publishers", h.Publishers)
	r.Get("/trends", h.Trends)
	r.Get("/stats", h.Stats)
	r.Get("/price-distribution", h.PriceDistribution)
}
