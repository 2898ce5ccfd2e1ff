// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

// Package config loads SteamPulse configuration.
//
// Configuration is layered, later sources overriding earlier ones:
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. A .env file in the working directory, if present
//  4. Process environment variables (see envMappings)
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Warehouse WarehouseConfig `koanf:"warehouse"`
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Lake      LakeConfig      `koanf:"lake"`
}

// Warehouse backends.
const (
	BackendBigQuery = "bigquery"
	BackendDuckDB   = "duckdb"
)

// WarehouseConfig selects and addresses the analytic warehouse.
type WarehouseConfig struct {
	// Backend is "bigquery" (production) or "duckdb" (embedded, local development).
	Backend string `koanf:"backend" validate:"oneof=bigquery duckdb"`

	ProjectID   string `koanf:"project_id"`
	Dataset     string `koanf:"dataset"`
	Location    string `koanf:"location"`
	GamesTable  string `koanf:"games_table" validate:"required"`
	TrendsTable string `koanf:"trends_table" validate:"required"`

	// CredentialsFile is the local key file used when no credential
	// environment variable is set. See ResolveCredentials.
	CredentialsFile string `koanf:"credentials_file"`

	// QueryTimeout bounds every warehouse call that has no deadline of its own.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gt=0"`

	// BreakerEnabled wraps warehouse calls in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// DatabaseConfig configures the embedded DuckDB warehouse.
type DatabaseConfig struct {
	Path                   string `koanf:"path"` // empty = in-memory
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads" validate:"gte=0"` // 0 = runtime.NumCPU()
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	SeedMockData           bool   `koanf:"seed_mock_data"`
	SeedMockGames          int    `koanf:"seed_mock_games" validate:"gte=0"`
	// SeedDir points at a directory of raw lake batch files (batch_*.json)
	// that are staged into stg_games at startup.
	SeedDir string `koanf:"seed_dir"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// APIConfig holds paging and view settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size" validate:"gte=1"`
	MaxPageSize     int `koanf:"max_page_size" validate:"gte=1"`

	// HypeCutoff is the default earliest release date (YYYY-MM-DD) ranked by /hype.
	HypeCutoff string `koanf:"hype_cutoff" validate:"isodate"`
}

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// CacheConfig configures the response cache behind the stale-after hint.
type CacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Backend       string        `koanf:"backend" validate:"oneof=memory redis"`
	TTL           time.Duration `koanf:"ttl" validate:"gt=0"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db" validate:"gte=0"`
	KeyPrefix     string        `koanf:"key_prefix"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes file:line in logs.
	Caller bool `koanf:"caller"`
}

// LakeConfig addresses the raw data lake that feeds the warehouse.
type LakeConfig struct {
	Bucket         string `koanf:"bucket"`
	RawPrefix      string `koanf:"raw_prefix"`
	RepairedPrefix string `koanf:"repaired_prefix"`
	LocalDir       string `koanf:"local_dir"`
}

// Load reads configuration from defaults, file, .env and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
