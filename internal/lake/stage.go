// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package lake

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/aggregate"
	"github.com/tomtom215/steampulse/internal/models"
)

// ErrSkipped marks payloads that do not become catalog rows.
var ErrSkipped = errors.New("skipped")

// releaseDateLayouts are the store page date formats seen with l=english.
var releaseDateLayouts = []string{
	"2 Jan, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2 January, 2006",
	"Jan 2006",
	"January 2006",
}

// ParseReleaseDate parses store release date text. Month-only dates
// resolve to the first of the month.
func ParseReleaseDate(s string) (civil.Date, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), true
		}
	}
	return civil.Date{}, false
}

// Stage maps one appdetails payload to a catalog row.
func Stage(d AppDetails) (models.Game, error) {
	if d.Type != "" && d.Type != "game" {
		return models.Game{}, ErrSkipped
	}
	name := strings.TrimSpace(d.Name)
	if d.AppID() <= 0 || name == "" {
		return models.Game{}, ErrSkipped
	}

	g := models.Game{
		AppID:       d.AppID(),
		Name:        name,
		IsFree:      d.IsFree,
		Genres:      []string{},
		HeaderImage: d.HeaderImage,
	}

	if d.PriceOverview != nil && !d.IsFree {
		g.Price = aggregate.RoundCurrency(float64(d.PriceOverview.Final) / 100)
	}
	for _, genre := range d.Genres {
		if desc := strings.TrimSpace(genre.Description); desc != "" {
			g.Genres = append(g.Genres, desc)
		}
	}
	if len(g.Genres) > 0 {
		primary := g.Genres[0]
		g.PrimaryGenre = &primary
	}
	if d.Metacritic != nil {
		score := d.Metacritic.Score
		g.Metacritic = &score
	}
	if d.Recommendations != nil {
		g.TotalReviews = d.Recommendations.Total
	}
	if d.ReleaseDate != nil && !d.ReleaseDate.ComingSoon {
		if date, ok := ParseReleaseDate(d.ReleaseDate.Date); ok {
			g.ReleaseDate = &date
		}
	}
	for _, p := range d.Publishers {
		if p = strings.TrimSpace(p); p != "" {
			g.Publisher = p
			break
		}
	}
	return g, nil
}

// StageAll stages payloads, keeping the most recently ingested payload
// per app id. Rows are ordered by app id. skipped counts payloads that
// did not become rows.
func StageAll(details []AppDetails) (games []models.Game, skipped int) {
	latest := make(map[int64]AppDetails, len(details))
	for _, d := range details {
		id := d.AppID()
		if prev, ok := latest[id]; ok {
			skipped++
			if prev.IngestedAt > d.IngestedAt {
				continue
			}
		}
		latest[id] = d
	}

	games = make([]models.Game, 0, len(latest))
	for _, d := range latest {
		g, err := Stage(d)
		if err != nil {
			skipped++
			continue
		}
		games = append(games, g)
	}
	slices.SortFunc(games, func(a, b models.Game) int { return cmp.Compare(a.AppID, b.AppID) })
	return games, skipped
}
