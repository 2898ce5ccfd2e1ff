// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/steampulse/internal/config"
)

// Store is a byte cache with per-entry expiry.
type Store interface {
	// Fetch returns the value and true on a hit. A backend failure is
	// returned as an error and should be treated as a miss.
	Fetch(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value for ttl. A ttl <= 0 uses the backend default.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Name is the backend label used in metrics and logs.
	Name() string
	Close() error
}

// Open returns the configured Store, or nil when caching is disabled.
func Open(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Backend {
	case config.CacheBackendMemory, "":
		return New(cfg.TTL, DefaultMaxEntries), nil
	case config.CacheBackendRedis:
		r, err := NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.KeyPrefix,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
