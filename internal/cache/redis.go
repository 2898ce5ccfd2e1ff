// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tomtom215/steampulse/internal/metrics"
)

const redisType = "redis"

// RedisOptions addresses the shared response cache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key.
	Prefix string
	// TTL is the default expiry for Put with ttl <= 0.
	TTL time.Duration
}

// Redis is a Store backed by a Redis server.
type Redis struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis cache: missing address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{rdb: rdb, prefix: opts.Prefix, ttl: opts.TTL}, nil
}

func (r *Redis) key(k string) string { return r.prefix + k }

// Fetch implements Store.
func (r *Redis) Fetch(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.RecordCacheLookup(redisType, false)
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheErrors.WithLabelValues(redisType).Inc()
		return nil, false, err
	}
	metrics.RecordCacheLookup(redisType, true)
	return data, true, nil
}

// Put implements Store.
func (r *Redis) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.rdb.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		metrics.CacheErrors.WithLabelValues(redisType).Inc()
		return err
	}
	return nil
}

// Name implements Store.
func (r *Redis) Name() string { return redisType }

// Close implements Store.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
