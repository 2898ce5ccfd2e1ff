// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
database_connection.go - Embedded DuckDB Runner

DuckDBRunner serves the same queries as BigQuery from an embedded DuckDB
database, for local development, demos and tests.

Connection Pool Configuration:
  - MaxOpenConns: Based on CPU count for parallelism
  - MaxIdleConns: 2 for efficient connection reuse
  - ConnMaxLifetime: 1 hour to prevent stale connections
  - ConnMaxIdleTime: 5 minutes for idle connection cleanup

An empty path opens an in-memory database. All connections of one runner
share the same database instance.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/database/query"
)

const memoryPath = ":memory:"

// DuckDBRunner runs queries against an embedded DuckDB database holding
// the games and trends tables.
type DuckDBRunner struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	games  string
	trends string
}

// OpenDuckDB opens the database at cfg.Path and creates the catalog
// tables if they do not exist.
func OpenDuckDB(ctx context.Context, cfg *config.DatabaseConfig, gamesTable, trendsTable string) (*DuckDBRunner, error) {
	path := cfg.Path
	if path == "" {
		path = memoryPath
	}

	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connectionString(path, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	r := &DuckDBRunner{
		conn:   conn,
		cfg:    cfg,
		games:  query.DuckDB{}.Table(gamesTable),
		trends: query.DuckDB{}.Table(trendsTable),
	}
	r.configureConnectionPool()

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := r.createTables(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return r, nil
}

// connectionString builds the DuckDB DSN with tuning options.
// preserve_insertion_order=false reduces memory usage but may change result order
func connectionString(path string, cfg *config.DatabaseConfig) string {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	return fmt.Sprintf("%s?threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, numThreads, maxMemory, preserveOrder)
}

// configureConnectionPool sets connection pool parameters
func (r *DuckDBRunner) configureConnectionPool() {
	r.conn.SetMaxOpenConns(runtime.NumCPU())
	r.conn.SetMaxIdleConns(2)
	r.conn.SetConnMaxLifetime(time.Hour)
	r.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Run implements Runner.
func (r *DuckDBRunner) Run(ctx context.Context, spec query.Spec) ([]Row, error) {
	rows, err := r.conn.QueryContext(ctx, spec.Text, spec.Args()...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, nil, "query rows")

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Close implements Runner.
func (r *DuckDBRunner) Close() error {
	return r.conn.Close()
}
