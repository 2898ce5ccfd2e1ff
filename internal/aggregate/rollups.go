// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package aggregate

import (
	"cmp"
	"slices"

	"github.com/tomtom215/steampulse/internal/models"
)

// DashboardStatsFromGames computes the KPI row over raw games.
func DashboardStatsFromGames(games []models.Game) models.DashboardStats {
	prices := make([]float64, 0, len(games))
	var ratings []float64
	var stats models.DashboardStats

	for i := range games {
		g := &games[i]
		prices = append(prices, g.Price)
		if g.Metacritic != nil {
			ratings = append(ratings, float64(*g.Metacritic))
		}
		if g.IsFree {
			stats.FreeGames++
		}
		stats.TotalReviews += g.TotalReviews
	}

	stats.TotalGames = int64(len(games))
	stats.PaidGames = stats.TotalGames - stats.FreeGames
	stats.AvgPrice = RoundedAverage(prices, CurrencyDecimals)
	stats.AvgMetacritic = RoundedAverage(ratings, ScoreDecimals)
	stats.MedianPrice = Median(prices)
	stats.FreePercentage = Percentage(stats.FreeGames, stats.TotalGames)
	return stats
}

// group accumulates the price and rating samples of one bucket.
type group struct {
	count   int64
	prices  []float64
	ratings []float64
	reviews int64
	quality int64
}

func (g *group) add(game *models.Game) {
	g.count++
	g.prices = append(g.prices, game.Price)
	g.reviews += game.TotalReviews
	if game.Metacritic != nil {
		g.ratings = append(g.ratings, float64(*game.Metacritic))
		if *game.Metacritic >= HighQualityRating {
			g.quality++
		}
	}
}

// YearlyTrendFromGames groups games by release year in
// [FirstTrendYear, maxYear], ascending. Games without a release date are skipped.
func YearlyTrendFromGames(games []models.Game, maxYear int) []models.YearlyTrend {
	groups := make(map[int]*group)
	for i := range games {
		g := &games[i]
		if g.ReleaseDate == nil {
			continue
		}
		year := g.ReleaseDate.Year
		if year < FirstTrendYear || year > maxYear {
			continue
		}
		if groups[year] == nil {
			groups[year] = &group{}
		}
		groups[year].add(g)
	}

	out := make([]models.YearlyTrend, 0, len(groups))
	for year, grp := range groups {
		out = append(out, models.YearlyTrend{
			Year:      year,
			GameCount: grp.count,
			AvgPrice:  RoundedAverage(grp.prices, CurrencyDecimals),
			AvgRating: RoundedAverage(grp.ratings, ScoreDecimals),
		})
	}
	slices.SortFunc(out, func(a, b models.YearlyTrend) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// groupByGenre groups games by non-nil primary genre.
func groupByGenre(games []models.Game) map[string]*group {
	groups := make(map[string]*group)
	for i := range games {
		g := &games[i]
		if g.PrimaryGenre == nil {
			continue
		}
		genre := *g.PrimaryGenre
		if groups[genre] == nil {
			groups[genre] = &group{}
		}
		groups[genre].add(g)
	}
	return groups
}

// GenreStatsFromGames is the mart_trends rollup: every primary genre by
// game count descending, genre name ascending on ties.
func GenreStatsFromGames(games []models.Game) []models.GenreStats {
	groups := groupByGenre(games)
	out := make([]models.GenreStats, 0, len(groups))
	for genre, grp := range groups {
		out = append(out, models.GenreStats{
			Genre:      genre,
			TotalGames: grp.count,
			AvgPrice:   RoundedAverage(grp.prices, CurrencyDecimals),
			AvgRating:  RoundedAverage(grp.ratings, ScoreDecimals),
		})
	}
	slices.SortFunc(out, func(a, b models.GenreStats) int {
		return byCountThenName(a.TotalGames, b.TotalGames, a.Genre, b.Genre)
	})
	return out
}

// TopGenresFromGames returns at most limit genres by game count
// descending, genre name ascending on ties.
func TopGenresFromGames(games []models.Game, limit int) []models.GenreCount {
	all := GenreStatsFromGames(games)
	out := make([]models.GenreCount, 0, min(limit, len(all)))
	for _, s := range all {
		if len(out) == limit {
			break
		}
		out = append(out, models.GenreCount{
			Genre:     s.Genre,
			GameCount: s.TotalGames,
			AvgPrice:  s.AvgPrice,
			AvgRating: s.AvgRating,
		})
	}
	return out
}

// PublisherStatsFromGames returns at most limit non-empty publishers by
// game count descending, publisher name ascending on ties.
func PublisherStatsFromGames(games []models.Game, limit int) []models.PublisherStats {
	groups := make(map[string]*group)
	for i := range games {
		g := &games[i]
		if g.Publisher == "" {
			continue
		}
		if groups[g.Publisher] == nil {
			groups[g.Publisher] = &group{}
		}
		groups[g.Publisher].add(g)
	}

	out := make([]models.PublisherStats, 0, len(groups))
	for publisher, grp := range groups {
		out = append(out, models.PublisherStats{
			Publisher:        publisher,
			TotalGames:       grp.count,
			AvgRating:        RoundedAverage(grp.ratings, ScoreDecimals),
			TotalReviews:     grp.reviews,
			AvgPrice:         RoundedAverage(grp.prices, CurrencyDecimals),
			HighQualityGames: grp.quality,
		})
	}
	slices.SortFunc(out, func(a, b models.PublisherStats) int {
		return byCountThenName(a.TotalGames, b.TotalGames, a.Publisher, b.Publisher)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PriceDistributionFromGames counts games per price band, in band order,
// omitting empty bands.
func PriceDistributionFromGames(games []models.Game) []models.PriceBucket {
	counts := make([]int64, len(PriceBands))
	for i := range games {
		counts[PriceBandIndex(games[i].Price, games[i].IsFree)]++
	}

	out := make([]models.PriceBucket, 0, len(PriceBands))
	for i, n := range counts {
		if n == 0 {
			continue
		}
		out = append(out, models.PriceBucket{PriceBucket: PriceBands[i].Label, GameCount: n})
	}
	return out
}

// byCountThenName orders by count descending, then name ascending.
func byCountThenName(countA, countB int64, nameA, nameB string) int {
	if c := cmp.Compare(countB, countA); c != 0 {
		return c
	}
	return cmp.Compare(nameA, nameB)
}
