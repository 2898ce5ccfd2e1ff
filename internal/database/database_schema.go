// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
database_schema.go - Embedded Catalog Schema

Tables mirror the BigQuery dataset written by the transformation layer:
  - stg_games: one row per game; genres is a VARCHAR list whose first
    element is primary_genre
  - mart_trends: per-genre rollup computed from stg_games

LoadCatalog replaces both tables in one transaction so readers never see
a games table that disagrees with its trends rollup.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/steampulse/internal/aggregate"
	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/models"
)

// genreSeparator joins genre lists for string_split on insert. It is the
// ASCII unit separator, which never appears in store genre names.
const genreSeparator = "\x1f"

// schemaContext returns a context with timeout for schema operations
func schemaContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 60*time.Second)
}

func (r *DuckDBRunner) tableCreationQueries() []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  appid BIGINT NOT NULL,
  name VARCHAR NOT NULL,
  price DOUBLE NOT NULL DEFAULT 0,
  is_free BOOLEAN NOT NULL DEFAULT false,
  genres VARCHAR[],
  primary_genre VARCHAR,
  metacritic INTEGER,
  total_reviews BIGINT NOT NULL DEFAULT 0,
  release_date DATE,
  publisher VARCHAR,
  header_image VARCHAR
)`, r.games),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  genre VARCHAR NOT NULL,
  total_games BIGINT NOT NULL,
  avg_price DOUBLE,
  avg_rating DOUBLE
)`, r.trends),
	}
}

// createTables creates the catalog tables
func (r *DuckDBRunner) createTables(ctx context.Context) error {
	ctx, cancel := schemaContext(ctx)
	defer cancel()

	for _, q := range r.tableCreationQueries() {
		if _, err := r.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (r *DuckDBRunner) insertGameQuery() string {
	return fmt.Sprintf(`INSERT INTO %s
  (appid, name, price, is_free, genres, primary_genre, metacritic, total_reviews, release_date, publisher, header_image)
VALUES
  (?, ?, ?, ?,
   CASE WHEN ? = '' THEN CAST([] AS VARCHAR[]) ELSE string_split(?, chr(31)) END,
   ?, ?, ?, CAST(? AS DATE), NULLIF(?, ''), NULLIF(?, ''))`, r.games)
}

func gameArgs(g models.Game) []any {
	genres := strings.Join(g.Genres, genreSeparator)

	var primary, metacritic, released any
	if g.PrimaryGenre != nil {
		primary = *g.PrimaryGenre
	}
	if g.Metacritic != nil {
		metacritic = *g.Metacritic
	}
	if g.ReleaseDate != nil {
		released = g.ReleaseDate.String()
	}

	return []any{
		g.AppID, g.Name, g.Price, g.IsFree,
		genres, genres,
		primary, metacritic, g.TotalReviews, released, g.Publisher, g.HeaderImage,
	}
}

// LoadCatalog replaces the games table with games and rebuilds the trends
// rollup from them.
func (r *DuckDBRunner) LoadCatalog(ctx context.Context, games []models.Game) (err error) {
	ctx, cancel := schemaContext(ctx)
	defer cancel()

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog load: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Warn().Err(rbErr).Msg("Failed to roll back catalog load")
			}
		}
	}()

	for _, table := range []string{r.games, r.trends} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err = insertAll(ctx, tx, r.insertGameQuery(), games, gameArgs); err != nil {
		return fmt.Errorf("insert games: %w", err)
	}

	trends := aggregate.GenreStatsFromGames(games)
	trendQuery := fmt.Sprintf("INSERT INTO %s (genre, total_games, avg_price, avg_rating) VALUES (?, ?, ?, ?)", r.trends)
	err = insertAll(ctx, tx, trendQuery, trends, func(s models.GenreStats) []any {
		return []any{s.Genre, s.TotalGames, floatArg(s.AvgPrice), floatArg(s.AvgRating)}
	})
	if err != nil {
		return fmt.Errorf("insert trends: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog load: %w", err)
	}

	logging.Info().Int("games", len(games)).Int("genres", len(trends)).Msg("Catalog loaded")
	return nil
}

func insertAll[T any](ctx context.Context, tx *sql.Tx, q string, items []T, args func(T) []any) error {
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer closeWithLog(stmt, nil, "prepared statement")

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, args(item)...); err != nil {
			return err
		}
	}
	return nil
}

func floatArg(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
