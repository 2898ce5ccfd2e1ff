// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/lake"
	"github.com/tomtom215/steampulse/internal/logging"
	"github.com/tomtom215/steampulse/internal/models"
)

// mockSeed fixes the mock catalog so screenshots and tests are stable.
const mockSeed = 0x5739_2011

var (
	mockGenres = []string{
		"Action", "Adventure", "Indie", "RPG", "Strategy", "Simulation",
		"Casual", "Racing", "Sports", "Massively Multiplayer",
	}
	mockPublishers = []string{
		"Valve", "Ubisoft", "Devolver Digital", "Paradox Interactive",
		"Bandai Namco Entertainment", "SEGA", "Annapurna Interactive",
		"Team17", "CD PROJEKT RED", "Raw Fury", "Focus Entertainment",
		"tinyBuild", "Humble Games", "Square Enix", "Capcom",
	}
	mockAdjectives = []string{
		"Hollow", "Crimson", "Silent", "Iron", "Neon", "Forgotten",
		"Stellar", "Broken", "Endless", "Wild", "Last", "Frozen",
	}
	mockNouns = []string{
		"Kingdom", "Frontier", "Protocol", "Harbor", "Legacy", "Circuit",
		"Dungeon", "Odyssey", "Garden", "Empire", "Signal", "Tides",
	}
	// Typical INR store price points.
	mockPrices = []float64{49, 99, 149, 199, 299, 399, 499, 649, 880, 1299, 1999, 2999, 3999}
)

// MockCatalog returns n deterministic games released between 2010 and
// today. A share of them fall inside the new and recent hype windows.
func MockCatalog(n int, today civil.Date) []models.Game {
	rng := rand.New(rand.NewPCG(mockSeed, uint64(n)))
	first := civil.Date{Year: 2010, Month: time.January, Day: 1}
	span := today.DaysSince(first)

	games := make([]models.Game, 0, n)
	for i := range n {
		g := models.Game{
			AppID: int64(10 + i*10),
			Name: fmt.Sprintf("%s %s %d",
				mockAdjectives[rng.IntN(len(mockAdjectives))],
				mockNouns[rng.IntN(len(mockNouns))],
				i+1),
			Publisher:    mockPublishers[rng.IntN(len(mockPublishers))],
			TotalReviews: int64(rng.ExpFloat64() * 4000),
		}

		g.Genres = []string{mockGenres[rng.IntN(len(mockGenres))]}
		if rng.IntN(2) == 0 {
			if extra := mockGenres[rng.IntN(len(mockGenres))]; extra != g.Genres[0] {
				g.Genres = append(g.Genres, extra)
			}
		}
		primary := g.Genres[0]
		g.PrimaryGenre = &primary

		if rng.IntN(10) == 0 {
			g.IsFree = true
		} else {
			g.Price = mockPrices[rng.IntN(len(mockPrices))]
		}

		if rng.IntN(5) < 3 {
			score := 40 + rng.IntN(58)
			g.Metacritic = &score
		}

		var released civil.Date
		switch roll := rng.IntN(20); {
		case roll == 0:
			released = today.AddDays(-rng.IntN(30))
		case roll <= 2:
			released = today.AddDays(-(30 + rng.IntN(60)))
		case roll == 3:
			// Unreleased titles keep no date.
		default:
			released = first.AddDays(rng.IntN(span + 1))
		}
		if released.IsValid() {
			g.ReleaseDate = &released
		}

		games = append(games, g)
	}
	return games
}

// seedCatalog loads the embedded database from a lake directory or the
// mock generator, as configured. It does nothing when neither is set.
func seedCatalog(ctx context.Context, r *DuckDBRunner, cfg *config.DatabaseConfig, today civil.Date) error {
	var games []models.Game
	switch {
	case cfg.SeedDir != "":
		details, err := lake.LoadDir(cfg.SeedDir)
		if err != nil {
			return fmt.Errorf("load seed batches: %w", err)
		}
		var skipped int
		games, skipped = lake.StageAll(details)
		logging.Info().
			Str("dir", cfg.SeedDir).
			Int("payloads", len(details)).
			Int("skipped", skipped).
			Msg("Seeding catalog from lake batches")
	case cfg.SeedMockData:
		games = MockCatalog(cfg.SeedMockGames, today)
		logging.Info().Int("games", len(games)).Msg("Seeding catalog with mock data")
	default:
		return nil
	}
	return r.LoadCatalog(ctx, games)
}
