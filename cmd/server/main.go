// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/steampulse/internal/api"
	"github.com/tomtom215/steampulse/internal/cache"
	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/database"
	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/metrics"
	"github.com/tomtom215/steampulse/internal/middleware"
	"github.com/tomtom215/steampulse/internal/supervisor"
	"github.com/tomtom215/steampulse/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const startupTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("backend", cfg.Warehouse.Backend).
		Str("environment", cfg.Server.Environment).
		Msg("Starting SteamPulse")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := database.Open(startCtx, cfg)
	if err != nil {
		return fmt.Errorf("open warehouse: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing warehouse")
		}
	}()
	logging.Info().
		Str("backend", db.Backend()).
		Str("circuit", db.CircuitState()).
		Msg("Warehouse ready")

	store, err := cache.Open(startCtx, cfg.Cache)
	if err != nil {
		// The API is fully functional without a response cache.
		logging.Warn().Err(err).Str("backend", cfg.Cache.Backend).Msg("Response cache unavailable, continuing without it")
		store = nil
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing response cache")
			}
		}()
		logging.Info().Str("backend", store.Name()).Dur("ttl", cfg.Cache.TTL).Msg("Response cache enabled")
	}

	metrics.AppInfo.WithLabelValues(version, runtime.Version(), db.Backend()).Set(1)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (rate_limit_disabled=true)")
	}

	handler := api.NewHandler(db, api.OptionsFromConfig(&cfg.API))
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, mw, api.RouterOptions{
		Cache:       store,
		CacheTTL:    cfg.Cache.TTL,
		SlowRequest: middleware.DefaultSlowRequestThreshold,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewWarehouseProbe(db, services.DefaultProbeInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// errCh receives exactly once and is never closed.
	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("SteamPulse stopped")
	return nil
}
