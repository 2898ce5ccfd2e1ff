// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/validation"
)

func TestMockCatalogDeterministic(t *testing.T) {
	t.Parallel()

	today := civil.Date{Year: 2026, Month: time.March, Day: 1}
	a := MockCatalog(200, today)
	b := MockCatalog(200, today)

	if len(a) != 200 {
		t.Fatalf("got %d games, want 200", len(a))
	}
	recent := 0
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Price != b[i].Price || a[i].TotalReviews != b[i].TotalReviews {
			t.Fatalf("game %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
		if verr := validation.ValidateStruct(a[i]); verr != nil {
			t.Errorf("game %d invalid: %v", i, verr)
		}
		if a[i].IsFree && a[i].Price != 0 {
			t.Errorf("free game %d has price %v", i, a[i].Price)
		}
		if d := a[i].ReleaseDate; d != nil {
			if d.After(today) {
				t.Errorf("game %d released in the future: %v", i, d)
			}
			if today.DaysSince(*d) < 90 {
				recent++
			}
		}
	}
	if recent == 0 {
		t.Error("expected some games inside the recent release window")
	}
}

func TestSeedCatalogFromLakeDir(t *testing.T) {
	dir := t.TempDir()
	batch := `[{"type":"game","name":"Portal 2","steam_appid":620,"is_free":false,
"genres":[{"id":"1","description":"Action"}],"price_overview":{"currency":"INR","final":82000},
"release_date":{"coming_soon":false,"date":"18 Apr, 2011"},"publishers":["Valve"]},
{"type":"dlc","name":"Soundtrack","steam_appid":621}]`
	if err := os.WriteFile(filepath.Join(dir, "batch_0.json"), []byte(batch), 0o600); err != nil {
		t.Fatal(err)
	}

	db := setupTestDB(t, nil)
	runner := db.runner.(*DuckDBRunner)
	cfg := &config.DatabaseConfig{SeedDir: dir}
	if err := seedCatalog(context.Background(), runner, cfg, civil.DateOf(testNow)); err != nil {
		t.Fatalf("seedCatalog: %v", err)
	}

	stats, err := db.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.TotalGames != 1 || stats.AvgPrice == nil || *stats.AvgPrice != 820 {
		t.Errorf("unexpected stats after seeding %+v", stats)
	}
}
