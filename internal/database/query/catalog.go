// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/aggregate"
	"github.com/tomtom215/steampulse/internal/models"
)

// Default result caps.
const (
	TopGenresLimit    = 8
	PublisherLimit    = 50
	HypeLimit         = 20
	GenreTrendsLimit  = 20
	DefaultPageSize   = 20
	ExplorerPageSize  = 50
	DefaultHypeCutoff = "2023-01-01"
)

// ErrInvalidIdentifier is returned for table, project or dataset names
// that cannot be safely quoted.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_-]*$`)

// gameColumns is the stg_games projection decoded into models.Game.
const gameColumns = "appid, name, price, is_free, genres, primary_genre, metacritic, total_reviews, release_date, publisher, header_image"

// Catalog renders the dashboard queries for one dialect and table pair.
type Catalog struct {
	dialect Dialect
	games   string
	trends  string
}

// NewCatalog validates the identifiers and returns a Catalog.
func NewCatalog(d Dialect, gamesTable, trendsTable string) (*Catalog, error) {
	idents := []string{gamesTable, trendsTable}
	if bq, ok := d.(BigQuery); ok {
		idents = append(idents, bq.Project, bq.Dataset)
	}
	for _, id := range idents {
		if !identifierPattern.MatchString(id) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
		}
	}
	return &Catalog{
		dialect: d,
		games:   d.Table(gamesTable),
		trends:  d.Table(trendsTable),
	}, nil
}

// Dialect returns the catalog's dialect.
func (c *Catalog) Dialect() Dialect { return c.dialect }

func (c *Catalog) binder() *Binder { return NewBinder(c.dialect) }

// Ping is a trivial round trip used by health checks.
func (c *Catalog) Ping() Spec {
	return c.binder().Spec("SELECT 1 AS ok")
}

// DashboardStats is the KPI row over stg_games.
func (c *Catalog) DashboardStats() Spec {
	d := c.dialect
	text := fmt.Sprintf(`SELECT
  COUNT(*) AS total_games,
  ROUND(AVG(price), %[1]d) AS avg_price,
  ROUND(AVG(metacritic), %[2]d) AS avg_metacritic,
  ROUND(%[3]s, %[1]d) AS median_price,
  %[4]s AS free_games,
  %[5]s AS paid_games,
  %[6]s AS total_reviews,
  ROUND(%[4]s / NULLIF(COUNT(*), 0) * 100, %[2]d) AS free_percentage
FROM %[7]s`,
		aggregate.CurrencyDecimals,
		aggregate.ScoreDecimals,
		d.Median("price"),
		d.CountIf("is_free = true"),
		d.CountIf("is_free = false"),
		d.Integer("COALESCE(SUM(total_reviews), 0)"),
		c.games,
	)
	return c.binder().Spec(text)
}

// YearlyTrend groups games by release year from FirstTrendYear to maxYear.
func (c *Catalog) YearlyTrend(maxYear int) Spec {
	b := c.binder()
	text := fmt.Sprintf(`SELECT
  %[1]s AS year,
  COUNT(*) AS game_count,
  ROUND(AVG(price), %[2]d) AS avg_price,
  ROUND(AVG(metacritic), %[3]d) AS avg_rating
FROM %[4]s
WHERE release_date IS NOT NULL
  AND EXTRACT(YEAR FROM release_date) >= %[5]d
  AND EXTRACT(YEAR FROM release_date) <= %[6]s
GROUP BY year
ORDER BY year`,
		c.dialect.Integer("EXTRACT(YEAR FROM release_date)"),
		aggregate.CurrencyDecimals,
		aggregate.ScoreDecimals,
		c.games,
		aggregate.FirstTrendYear,
		b.Bind("max_year", maxYear),
	)
	return b.Spec(text)
}

// TopGenres returns the largest primary genres by game count.
func (c *Catalog) TopGenres(limit int) Spec {
	b := c.binder()
	text := fmt.Sprintf(`SELECT
  primary_genre AS genre,
  COUNT(*) AS game_count,
  ROUND(AVG(price), %[1]d) AS avg_price,
  ROUND(AVG(metacritic), %[2]d) AS avg_rating
FROM %[3]s
WHERE primary_genre IS NOT NULL
GROUP BY primary_genre
ORDER BY game_count DESC, genre ASC
LIMIT %[4]s`,
		aggregate.CurrencyDecimals,
		aggregate.ScoreDecimals,
		c.games,
		b.Bind("limit", limit),
	)
	return b.Spec(text)
}

// GenreList returns the distinct primary genres, alphabetical.
func (c *Catalog) GenreList() Spec {
	text := fmt.Sprintf(`SELECT DISTINCT primary_genre AS genre
FROM %s
WHERE primary_genre IS NOT NULL
ORDER BY genre`, c.games)
	return c.binder().Spec(text)
}

func (c *Catalog) gameFilter(b *Binder, f models.GameFilter) string {
	wb := NewWhereBuilder(b)
	wb.AddSearch("name", f.Search)
	if f.Genre != "" {
		wb.AddEquals("primary_genre", "genre", f.Genre)
	}
	if f.MinPrice != nil {
		wb.AddMin("price", "min_price", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		wb.AddMax("price", "max_price", *f.MaxPrice)
	}
	if f.MinRating != nil {
		wb.AddMin("metacritic", "min_rating", *f.MinRating)
	}
	if f.IsFree != nil {
		wb.AddEquals("is_free", "is_free", *f.IsFree)
	}
	return wb.BuildWithPrefix()
}

// SearchGames returns one page of games matching f, best rated first.
func (c *Catalog) SearchGames(f models.GameFilter, p Page) Spec {
	b := c.binder()
	where := c.gameFilter(b, f)
	text := fmt.Sprintf(`SELECT %s
FROM %s
%s
ORDER BY metacritic DESC NULLS LAST, name ASC, appid ASC
LIMIT %s OFFSET %s`,
		gameColumns,
		c.games,
		where,
		b.Bind("limit", p.Size),
		b.Bind("offset", p.Offset()),
	)
	return b.Spec(text)
}

// CountGames counts the games matching f.
func (c *Catalog) CountGames(f models.GameFilter) Spec {
	b := c.binder()
	where := c.gameFilter(b, f)
	text := fmt.Sprintf("SELECT COUNT(*) AS total\nFROM %s\n%s", c.games, where)
	return b.Spec(text)
}

// HypeScores ranks games released on or after cutoff by reviews per day
// as of asOf. Games released on asOf or later get a null score.
func (c *Catalog) HypeScores(cutoff, asOf civil.Date, limit int) Spec {
	d := c.dialect
	b := c.binder()
	days := d.DaysBetween("release_date", "CAST("+b.Bind("as_of", asOf.String())+" AS DATE)")
	text := fmt.Sprintf(`WITH released AS (
  SELECT
    appid,
    name,
    primary_genre,
    total_reviews,
    release_date,
    metacritic,
    %[1]s AS days_since_release
  FROM %[2]s
  WHERE release_date IS NOT NULL
    AND release_date >= CAST(%[3]s AS DATE)
)
SELECT
  appid,
  name,
  primary_genre,
  total_reviews,
  release_date,
  metacritic,
  days_since_release,
  CASE WHEN days_since_release > 0 THEN total_reviews / days_since_release END AS hype_score
FROM released
ORDER BY hype_score DESC NULLS LAST, appid ASC
LIMIT %[4]s`,
		d.Integer(days),
		c.games,
		b.Bind("cutoff", cutoff.String()),
		b.Bind("limit", limit),
	)
	return b.Spec(text)
}

// PublisherStats returns the largest publishers by game count.
func (c *Catalog) PublisherStats(limit int) Spec {
	d := c.dialect
	b := c.binder()
	text := fmt.Sprintf(`SELECT
  publisher,
  COUNT(*) AS total_games,
  ROUND(AVG(metacritic), %[1]d) AS avg_rating,
  %[2]s AS total_reviews,
  ROUND(AVG(price), %[3]d) AS avg_price,
  %[4]s AS high_quality_games
FROM %[5]s
WHERE publisher IS NOT NULL
  AND publisher != ''
GROUP BY publisher
ORDER BY total_games DESC, publisher ASC
LIMIT %[6]s`,
		aggregate.ScoreDecimals,
		d.Integer("COALESCE(SUM(total_reviews), 0)"),
		aggregate.CurrencyDecimals,
		d.CountIf("metacritic >= "+strconv.Itoa(aggregate.HighQualityRating)),
		c.games,
		b.Bind("limit", limit),
	)
	return b.Spec(text)
}

// GenreTrends reads the precomputed mart_trends rollup.
func (c *Catalog) GenreTrends(limit int) Spec {
	b := c.binder()
	text := fmt.Sprintf(`SELECT genre, total_games, avg_price, avg_rating
FROM %s
ORDER BY total_games DESC, genre ASC
LIMIT %s`, c.trends, b.Bind("limit", limit))
	return b.Spec(text)
}

// CatalogSummary is the legacy three-number summary.
func (c *Catalog) CatalogSummary() Spec {
	text := fmt.Sprintf(`SELECT
  COUNT(*) AS total_games,
  %s AS free_games,
  ROUND(AVG(metacritic), %d) AS avg_metacritic
FROM %s`, c.dialect.CountIf("is_free = true"), aggregate.ScoreDecimals, c.games)
	return c.binder().Spec(text)
}

// PriceDistribution counts games per aggregate.PriceBands index. The band
// column is the index; labels are applied when decoding.
func (c *Catalog) PriceDistribution() Spec {
	text := fmt.Sprintf(`SELECT %s AS band, COUNT(*) AS game_count
FROM %s
GROUP BY band
ORDER BY band`, c.dialect.Integer(priceBandCase()), c.games)
	return c.binder().Spec(text)
}

// priceBandCase renders aggregate.PriceBandIndex as a CASE expression.
func priceBandCase() string {
	var sb strings.Builder
	sb.WriteString("CASE WHEN is_free = true OR price <= 0 THEN 0")
	last := len(aggregate.PriceBands) - 1
	for i := 1; i < last; i++ {
		fmt.Fprintf(&sb, " WHEN price < %s THEN %d",
			strconv.FormatFloat(aggregate.PriceBands[i].UpperBound, 'f', -1, 64), i)
	}
	fmt.Fprintf(&sb, " ELSE %d END", last)
	return sb.String()
}
