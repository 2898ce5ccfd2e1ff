// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/steampulse/config.yaml",
	"/etc/steampulse/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file path.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns the built-in defaults. They describe the hosted
// deployment: BigQuery project steampulse-data-eng, dbt dataset dbt_gsinha.
func defaultConfig() *Config {
	return &Config{
		Warehouse: WarehouseConfig{
			Backend:         BackendBigQuery,
			ProjectID:       "steampulse-data-eng",
			Dataset:         "dbt_gsinha",
			Location:        "",
			GamesTable:      "stg_games",
			TrendsTable:     "mart_trends",
			CredentialsFile: "gcp_keys.json",
			QueryTimeout:    30 * time.Second,
			BreakerEnabled:  true,
		},
		Database: DatabaseConfig{
			Path:                   "",
			MaxMemory:              "1GB",
			Threads:                0,
			PreserveInsertionOrder: true,
			SeedMockData:           false,
			SeedMockGames:          500,
			SeedDir:                "",
		},
		Server: ServerConfig{
			Port:        3000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			HypeCutoff:      "2023-01-01",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   CacheBackendMemory,
			TTL:       time.Hour,
			RedisAddr: "localhost:6379",
			RedisDB:   0,
			KeyPrefix: "steampulse:",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Lake: LakeConfig{
			Bucket:         "steampulse-raw-lake",
			RawPrefix:      "raw_layer",
			RepairedPrefix: "raw_layer/repaired",
			LocalDir:       "data",
		},
	}
}

// LoadWithKoanf loads configuration with Koanf v2. Precedence is
// ENV > .env > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv copies variables from a .env file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated env values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored so the process environment cannot
// pollute configuration.
var envMappings = map[string]string{
	// Warehouse
	"warehouse_backend":        "warehouse.backend",
	"gcp_project_id":           "warehouse.project_id",
	"bigquery_dataset":         "warehouse.dataset",
	"bigquery_location":        "warehouse.location",
	"stg_games_table":          "warehouse.games_table",
	"mart_trends_table":        "warehouse.trends_table",
	"gcp_credentials_file":     "warehouse.credentials_file",
	"query_timeout":            "warehouse.query_timeout",
	"warehouse_breaker_enabled": "warehouse.breaker_enabled",

	// Embedded DuckDB
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_mock_data":    "database.seed_mock_data",
	"seed_mock_games":   "database.seed_mock_games",
	"seed_dir":          "database.seed_dir",

	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// API
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",
	"hype_cutoff_date":      "api.hype_cutoff",

	// Cache
	"cache_enabled":    "cache.enabled",
	"cache_backend":    "cache.backend",
	"cache_ttl":        "cache.ttl",
	"redis_addr":       "cache.redis_addr",
	"redis_password":   "cache.redis_password",
	"redis_db":         "cache.redis_db",
	"cache_key_prefix": "cache.key_prefix",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Lake
	"lake_bucket":          "lake.bucket",
	"lake_raw_prefix":      "lake.raw_prefix",
	"lake_repaired_prefix": "lake.repaired_prefix",
	"lake_local_dir":       "lake.local_dir",
}

// envTransformFunc maps an environment variable name to a koanf path.
//
//   - HTTP_PORT -> server.port
//   - WAREHOUSE_BACKEND -> warehouse.backend
//   - REDIS_ADDR -> cache.redis_addr
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
