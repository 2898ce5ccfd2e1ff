// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package derive

import (
	"sort"

	"github.com/tomtom215/steampulse/internal/models"
)

// Publisher insight bounds.
const (
	InsightSize        = 5
	QualityMinGames    = 5
	QualityMaxGames    = 50 // exclusive
	ConsistentMinGames = 10
)

// PublisherInsights computes the volume, quality and consistent views.
func PublisherInsights(rows []models.PublisherStats) models.PublisherInsights {
	volume := filterPublishers(rows, func(models.PublisherStats) bool { return true })
	sort.SliceStable(volume, func(i, j int) bool {
		return volume[i].TotalGames > volume[j].TotalGames
	})

	quality := filterPublishers(rows, func(p models.PublisherStats) bool {
		return p.TotalGames >= QualityMinGames && p.TotalGames < QualityMaxGames
	})
	sortByRating(quality)

	consistent := filterPublishers(rows, func(p models.PublisherStats) bool {
		return p.TotalGames >= ConsistentMinGames
	})
	sortByRating(consistent)

	return models.PublisherInsights{
		Volume:     head(volume, InsightSize),
		Quality:    head(quality, InsightSize),
		Consistent: head(consistent, InsightSize),
	}
}

func filterPublishers(rows []models.PublisherStats, keep func(models.PublisherStats) bool) []models.PublisherStats {
	out := make([]models.PublisherStats, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// sortByRating sorts by AvgRating descending, nil last, stable.
func sortByRating(rows []models.PublisherStats) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].AvgRating, rows[j].AvgRating
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
}

func head(rows []models.PublisherStats, n int) []models.PublisherStats {
	if len(rows) > n {
		return rows[:n:n]
	}
	return rows
}
