// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package derive

import (
	"math"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/models"
)

// Recency thresholds in days, inclusive.
const (
	NewReleaseDays    = 30
	RecentReleaseDays = 90
)

// Fallback windows over the ranked list, as [start, end) ranks.
var (
	newFallback         = [2]int{0, 5}
	recentFallback      = [2]int{5, 10}
	establishedFallback = [2]int{0, 10}
)

// HypeScore returns reviews per day since release, or nil when days is
// not positive.
func HypeScore(totalReviews int64, days int) *float64 {
	if days <= 0 {
		return nil
	}
	score := float64(totalReviews) / float64(days)
	return &score
}

// DaysSince returns the whole days between release (UTC midnight) and
// now, rounded up. Dates in the future count the same as dates in the past.
func DaysSince(release civil.Date, now time.Time) int {
	d := now.Sub(release.In(time.UTC))
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(float64(d) / float64(24*time.Hour)))
}

// CategorizeHype buckets ranked hype rows by recency. Rows keep their
// input order inside each bucket. Rows whose DaysSinceRelease is missing
// or not positive get it recomputed from now, so upcoming releases are
// bucketed by distance.
func CategorizeHype(rows []models.HypeScore, now time.Time) models.HypeCategories {
	all := make([]models.HypeScore, len(rows))
	copy(all, rows)

	cats := models.HypeCategories{
		New:         []models.HypeScore{},
		Recent:      []models.HypeScore{},
		Established: []models.HypeScore{},
	}

	for i := range all {
		row := &all[i]
		if row.DaysSinceRelease == nil || *row.DaysSinceRelease <= 0 {
			days := DaysSince(row.ReleaseDate, now)
			row.DaysSinceRelease = &days
		}

		switch days := *row.DaysSinceRelease; {
		case days <= NewReleaseDays:
			cats.New = append(cats.New, *row)
		case days <= RecentReleaseDays:
			cats.Recent = append(cats.Recent, *row)
		default:
			cats.Established = append(cats.Established, *row)
		}
	}

	if len(cats.New) == 0 {
		cats.New = window(all, newFallback)
	}
	if len(cats.Recent) == 0 {
		cats.Recent = window(all, recentFallback)
	}
	if len(cats.Established) == 0 {
		cats.Established = window(all, establishedFallback)
	}
	return cats
}

// window copies rows[w[0]:w[1]] clipped to len(rows).
func window(rows []models.HypeScore, w [2]int) []models.HypeScore {
	start, end := min(w[0], len(rows)), min(w[1], len(rows))
	out := make([]models.HypeScore, end-start)
	copy(out, rows[start:end])
	return out
}
