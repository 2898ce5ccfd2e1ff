// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/aggregate"
	"github.com/tomtom215/steampulse/internal/config"
	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/models"
)

// testDBSemaphore serializes DuckDB tests. Many concurrent CGO
// connections can hang under CI resource pressure, so the slot is held
// for the whole test, not just while opening.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes database creation.
var testDBMutex sync.Mutex

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func date(y int, m time.Month, d int) *civil.Date {
	return &civil.Date{Year: y, Month: m, Day: d}
}

func testGames() []models.Game {
	return []models.Game{
		{AppID: 620, Name: "Portal 2", Price: 820, Genres: []string{"Action", "Adventure"}, PrimaryGenre: strPtr("Action"), Metacritic: intPtr(95), TotalReviews: 400000, ReleaseDate: date(2011, time.April, 18), Publisher: "Valve"},
		{AppID: 570, Name: "Dota 2", IsFree: true, Genres: []string{"Action", "Strategy"}, PrimaryGenre: strPtr("Action"), TotalReviews: 2000000, ReleaseDate: date(2013, time.July, 9), Publisher: "Valve"},
		{AppID: 1145360, Name: "Hades", Price: 1099, Genres: []string{"Indie", "RPG"}, PrimaryGenre: strPtr("Indie"), Metacritic: intPtr(93), TotalReviews: 250000, ReleaseDate: date(2020, time.September, 17), Publisher: "Supergiant Games"},
		{AppID: 282800, Name: "100% Orange Juice", Price: 299, Genres: []string{"Casual"}, PrimaryGenre: strPtr("Casual"), TotalReviews: 30000, ReleaseDate: date(2014, time.May, 14), Publisher: "Fruitbat Factory"},
		{AppID: 900001, Name: "Fresh Release", Price: 499, Genres: []string{"Indie"}, PrimaryGenre: strPtr("Indie"), Metacritic: intPtr(70), TotalReviews: 3000, ReleaseDate: date(2026, time.February, 20), Publisher: "Indie Co"},
		{AppID: 900002, Name: "Upcoming Quest", Price: 999, Genres: []string{"RPG"}, PrimaryGenre: strPtr("RPG"), ReleaseDate: date(2026, time.June, 1), Publisher: "Indie Co"},
		{AppID: 900003, Name: "Undated", Price: 149, Genres: []string{}, TotalReviews: 10},
	}
}

// setupTestDB opens an in-memory DuckDB loaded with games.
func setupTestDB(t *testing.T, games []models.Game) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{MaxMemory: "512MB", Threads: 2, PreserveInsertionOrder: true}

	type result struct {
		runner *DuckDBRunner
		err    error
	}
	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		defer testDBMutex.Unlock()
		ctx := context.Background()
		r, err := OpenDuckDB(ctx, cfg, "stg_games", "mart_trends")
		if err == nil {
			if err = r.LoadCatalog(ctx, games); err != nil {
				closeQuietly(r)
			}
		}
		resultCh <- result{runner: r, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		catalog, err := query.NewCatalog(query.DuckDB{}, "stg_games", "mart_trends")
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		db := New(res.runner, catalog, Options{
			QueryTimeout: 30 * time.Second,
			Now:          func() time.Time { return testNow },
		})
		t.Cleanup(func() { closeQuietly(db) })
		return db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s (DuckDB may be under resource pressure)")
		return nil
	}
}

func assertFloat(t *testing.T, name string, got, want *float64) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", name, got, want)
	case math.Abs(*got-*want) > 1e-6:
		t.Errorf("%s = %v, want %v", name, *got, *want)
	}
}

func TestGetDashboardStatsMatchesRollup(t *testing.T) {
	games := testGames()
	db := setupTestDB(t, games)

	got, err := db.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	want := aggregate.DashboardStatsFromGames(games)

	if got.TotalGames != want.TotalGames || got.FreeGames != want.FreeGames || got.PaidGames != want.PaidGames {
		t.Errorf("counts = %d/%d/%d, want %d/%d/%d",
			got.TotalGames, got.FreeGames, got.PaidGames, want.TotalGames, want.FreeGames, want.PaidGames)
	}
	if got.TotalReviews != want.TotalReviews {
		t.Errorf("TotalReviews = %d, want %d", got.TotalReviews, want.TotalReviews)
	}
	assertFloat(t, "AvgPrice", got.AvgPrice, want.AvgPrice)
	assertFloat(t, "AvgMetacritic", got.AvgMetacritic, want.AvgMetacritic)
	assertFloat(t, "MedianPrice", got.MedianPrice, want.MedianPrice)
	assertFloat(t, "FreePercentage", got.FreePercentage, want.FreePercentage)
}

func TestGetDashboardStatsEmptyCatalog(t *testing.T) {
	db := setupTestDB(t, nil)

	got, err := db.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if got.TotalGames != 0 || got.TotalReviews != 0 {
		t.Errorf("expected zero counts, got %+v", got)
	}
	if got.AvgPrice != nil || got.MedianPrice != nil || got.FreePercentage != nil {
		t.Errorf("averages over no games should be null, got %+v", got)
	}
}

func TestGetYearlyTrendMatchesRollup(t *testing.T) {
	games := testGames()
	db := setupTestDB(t, games)

	got, err := db.GetYearlyTrend(context.Background())
	if err != nil {
		t.Fatalf("GetYearlyTrend: %v", err)
	}
	want := aggregate.YearlyTrendFromGames(games, testNow.Year())
	if len(got) != len(want) {
		t.Fatalf("got %d years, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Year != want[i].Year || got[i].GameCount != want[i].GameCount {
			t.Errorf("year %d: got %+v, want %+v", i, got[i], want[i])
		}
		assertFloat(t, "AvgPrice", got[i].AvgPrice, want[i].AvgPrice)
		assertFloat(t, "AvgRating", got[i].AvgRating, want[i].AvgRating)
	}
}

func TestGetTopGenresAndList(t *testing.T) {
	games := testGames()
	db := setupTestDB(t, games)
	ctx := context.Background()

	top, err := db.GetTopGenres(ctx, query.TopGenresLimit)
	if err != nil {
		t.Fatalf("GetTopGenres: %v", err)
	}
	want := aggregate.TopGenresFromGames(games, query.TopGenresLimit)
	if len(top) != len(want) {
		t.Fatalf("got %d genres, want %d", len(top), len(want))
	}
	for i := range want {
		if top[i].Genre != want[i].Genre || top[i].GameCount != want[i].GameCount {
			t.Errorf("genre %d: got %+v, want %+v", i, top[i], want[i])
		}
		assertFloat(t, "AvgPrice", top[i].AvgPrice, want[i].AvgPrice)
	}

	names, err := db.ListGenres(ctx)
	if err != nil {
		t.Fatalf("ListGenres: %v", err)
	}
	wantNames := []string{"Action", "Casual", "Indie", "RPG"}
	if len(names) != len(wantNames) {
		t.Fatalf("ListGenres = %+v, want %v", names, wantNames)
	}
	for i, n := range wantNames {
		if names[i].Genre != n {
			t.Errorf("ListGenres[%d] = %q, want %q", i, names[i].Genre, n)
		}
	}
}

func TestGetTopGenres_CapAndTies(t *testing.T) {
	counts := []struct {
		genre string
		n     int
	}{
		{"Simulation", 1}, {"Strategy", 3}, {"Sports", 2}, {"Action", 5}, {"Racing", 2},
		{"RPG", 1}, {"Puzzle", 3}, {"Horror", 1}, {"Casual", 2}, {"Indie", 1},
	}
	var games []models.Game
	appID := int64(1)
	for _, c := range counts {
		for i := 0; i < c.n; i++ {
			games = append(games, models.Game{
				AppID:        appID,
				Name:         fmt.Sprintf("%s %d", c.genre, i),
				Price:        float64(100 * (i + 1)),
				Genres:       []string{c.genre},
				PrimaryGenre: strPtr(c.genre),
				ReleaseDate:  date(2020, time.January, 1),
			})
			appID++
		}
	}
	db := setupTestDB(t, games)

	top, err := db.GetTopGenres(context.Background(), query.TopGenresLimit)
	if err != nil {
		t.Fatalf("GetTopGenres: %v", err)
	}
	want := []string{"Action", "Puzzle", "Strategy", "Casual", "Racing", "Sports", "Horror", "Indie"}
	if len(top) != query.TopGenresLimit {
		t.Fatalf("got %d genres, want %d: %+v", len(top), query.TopGenresLimit, top)
	}
	for i, g := range want {
		if top[i].Genre != g {
			t.Errorf("genre %d = %q, want %q", i, top[i].Genre, g)
		}
	}
	if top[0].GameCount != 5 || top[7].GameCount != 1 {
		t.Errorf("counts = %d..%d, want 5..1", top[0].GameCount, top[7].GameCount)
	}

	rollup := aggregate.TopGenresFromGames(games, query.TopGenresLimit)
	for i := range rollup {
		if rollup[i].Genre != top[i].Genre || rollup[i].GameCount != top[i].GameCount {
			t.Errorf("rollup %d = %+v, warehouse %+v", i, rollup[i], top[i])
		}
	}
}

func TestSearchGames(t *testing.T) {
	db := setupTestDB(t, testGames())
	ctx := context.Background()

	free := true
	minRating := 90
	maxPrice := 500.0

	tests := []struct {
		name      string
		filter    models.GameFilter
		page      query.Page
		wantIDs   []int64
		wantTotal int64
	}{
		{"case insensitive search", models.GameFilter{Search: "PORTAL"}, query.Page{Number: 1, Size: 20}, []int64{620}, 1},
		{"literal percent", models.GameFilter{Search: "100%"}, query.Page{Number: 1, Size: 20}, []int64{282800}, 1},
		{"underscore is not a wildcard", models.GameFilter{Search: "_"}, query.Page{Number: 1, Size: 20}, []int64{}, 0},
		{"genre", models.GameFilter{Genre: "Indie"}, query.Page{Number: 1, Size: 20}, []int64{1145360, 900001}, 2},
		{"free only", models.GameFilter{IsFree: &free}, query.Page{Number: 1, Size: 20}, []int64{570}, 1},
		{"min rating", models.GameFilter{MinRating: &minRating}, query.Page{Number: 1, Size: 20}, []int64{620, 1145360}, 2},
		{"max price", models.GameFilter{MaxPrice: &maxPrice}, query.Page{Number: 1, Size: 20}, []int64{900001, 282800, 570, 900003}, 4},
		{"second page", models.GameFilter{}, query.Page{Number: 2, Size: 3}, []int64{282800, 570, 900003}, 7},
		{"past the end", models.GameFilter{}, query.Page{Number: 5, Size: 3}, []int64{}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := db.SearchGames(ctx, tt.filter, tt.page)
			if err != nil {
				t.Fatalf("SearchGames: %v", err)
			}
			if page.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", page.Total, tt.wantTotal)
			}
			if page.TotalPages != tt.page.TotalPages(tt.wantTotal) {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tt.page.TotalPages(tt.wantTotal))
			}
			if page.Data == nil {
				t.Fatal("Data must be an empty slice, not nil")
			}
			if len(page.Data) != len(tt.wantIDs) {
				t.Fatalf("got %d rows, want %d", len(page.Data), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if page.Data[i].AppID != id {
					t.Errorf("row %d = %d (%s), want %d", i, page.Data[i].AppID, page.Data[i].Name, id)
				}
			}
		})
	}
}

func TestSearchGamesDecodesAllColumns(t *testing.T) {
	db := setupTestDB(t, testGames())

	page, err := db.SearchGames(context.Background(), models.GameFilter{Search: "portal"}, query.Page{Number: 1, Size: 1})
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	g := page.Data[0]
	if g.Price != 820 || g.IsFree || g.Publisher != "Valve" || g.TotalReviews != 400000 {
		t.Errorf("unexpected scalar columns %+v", g)
	}
	if len(g.Genres) != 2 || g.Genres[0] != "Action" || g.Genres[1] != "Adventure" {
		t.Errorf("Genres = %v", g.Genres)
	}
	if g.Metacritic == nil || *g.Metacritic != 95 {
		t.Errorf("Metacritic = %v", g.Metacritic)
	}
	if g.ReleaseDate == nil || *g.ReleaseDate != *date(2011, time.April, 18) {
		t.Errorf("ReleaseDate = %v", g.ReleaseDate)
	}

	undated, err := db.SearchGames(context.Background(), models.GameFilter{Search: "undated"}, query.Page{Number: 1, Size: 1})
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	u := undated.Data[0]
	if u.ReleaseDate != nil || u.PrimaryGenre != nil || u.Publisher != "" || len(u.Genres) != 0 || u.Genres == nil {
		t.Errorf("null columns should decode to zero values: %+v", u)
	}
}

func TestGetHypeScores(t *testing.T) {
	db := setupTestDB(t, testGames())

	cutoff := civil.Date{Year: 2023, Month: time.January, Day: 1}
	rows, err := db.GetHypeScores(context.Background(), cutoff, query.HypeLimit)
	if err != nil {
		t.Fatalf("GetHypeScores: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}

	fresh := rows[0]
	if fresh.AppID != 900001 || fresh.DaysSinceRelease == nil || *fresh.DaysSinceRelease != 9 {
		t.Errorf("unexpected first row %+v", fresh)
	}
	if fresh.HypeScore == nil || math.Abs(*fresh.HypeScore-3000.0/9) > 1e-6 {
		t.Errorf("HypeScore = %v, want %v", fresh.HypeScore, 3000.0/9)
	}

	upcoming := rows[1]
	if upcoming.AppID != 900002 || upcoming.HypeScore != nil {
		t.Errorf("unreleased game should rank last with a null score: %+v", upcoming)
	}
	if upcoming.DaysSinceRelease == nil || *upcoming.DaysSinceRelease >= 0 {
		t.Errorf("DaysSinceRelease = %v, want negative", upcoming.DaysSinceRelease)
	}
}

func TestGetPublisherStatsMatchesRollup(t *testing.T) {
	games := testGames()
	db := setupTestDB(t, games)

	got, err := db.GetPublisherStats(context.Background(), query.PublisherLimit)
	if err != nil {
		t.Fatalf("GetPublisherStats: %v", err)
	}
	want := aggregate.PublisherStatsFromGames(games, query.PublisherLimit)
	if len(got) != len(want) {
		t.Fatalf("got %d publishers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Publisher != want[i].Publisher || got[i].TotalGames != want[i].TotalGames ||
			got[i].TotalReviews != want[i].TotalReviews || got[i].HighQualityGames != want[i].HighQualityGames {
			t.Errorf("publisher %d: got %+v, want %+v", i, got[i], want[i])
		}
		assertFloat(t, "AvgRating", got[i].AvgRating, want[i].AvgRating)
		assertFloat(t, "AvgPrice", got[i].AvgPrice, want[i].AvgPrice)
	}
}

func TestGetGenreTrendsReadsMart(t *testing.T) {
	games := testGames()
	db := setupTestDB(t, games)

	got, err := db.GetGenreTrends(context.Background(), query.GenreTrendsLimit)
	if err != nil {
		t.Fatalf("GetGenreTrends: %v", err)
	}
	want := aggregate.GenreStatsFromGames(games)
	if len(got) != len(want) {
		t.Fatalf("got %d trends, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Genre != want[i].Genre || got[i].TotalGames != want[i].TotalGames {
			t.Errorf("trend %d: got %+v, want %+v", i, got[i], want[i])
		}
		assertFloat(t, "AvgRating", got[i].AvgRating, want[i].AvgRating)
	}
}

func TestGetPriceDistributionMatchesRollup(t *testing.T) {
	games := testGames()
	db := setupTestDB(t, games)

	got, err := db.GetPriceDistribution(context.Background())
	if err != nil {
		t.Fatalf("GetPriceDistribution: %v", err)
	}
	want := aggregate.PriceDistributionFromGames(games)
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGetCatalogSummaryAndPing(t *testing.T) {
	db := setupTestDB(t, testGames())
	ctx := context.Background()

	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	sum, err := db.GetCatalogSummary(ctx)
	if err != nil {
		t.Fatalf("GetCatalogSummary: %v", err)
	}
	if sum.TotalGames != 7 || sum.FreeGames != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}
	assertFloat(t, "AvgMetacritic", sum.AvgMetacritic, aggregate.RoundedAverage([]float64{95, 93, 70}, aggregate.ScoreDecimals))

	if db.Backend() != "duckdb" || db.CircuitState() != "disabled" {
		t.Errorf("Backend/CircuitState = %s/%s", db.Backend(), db.CircuitState())
	}
}

func TestLoadCatalogReplacesRows(t *testing.T) {
	db := setupTestDB(t, testGames())
	ctx := context.Background()

	runner := db.runner.(*DuckDBRunner)
	if err := runner.LoadCatalog(ctx, testGames()[:2]); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	stats, err := db.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.TotalGames != 2 {
		t.Errorf("TotalGames = %d after reload, want 2", stats.TotalGames)
	}
	trends, err := db.GetGenreTrends(ctx, query.GenreTrendsLimit)
	if err != nil {
		t.Fatalf("GetGenreTrends: %v", err)
	}
	if len(trends) != 1 || trends[0].Genre != "Action" || trends[0].TotalGames != 2 {
		t.Errorf("trends not rebuilt: %+v", trends)
	}
}

func TestOpenDuckDBWithMockSeed(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := &config.Config{
		Warehouse: config.WarehouseConfig{
			Backend:      config.BackendDuckDB,
			GamesTable:   "stg_games",
			TrendsTable:  "mart_trends",
			QueryTimeout: 30 * time.Second,
		},
		Database: config.DatabaseConfig{MaxMemory: "512MB", Threads: 2, SeedMockData: true, SeedMockGames: 120},
	}

	db, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeQuietly(db)

	summary, err := db.GetCatalogSummary(context.Background())
	if err != nil {
		t.Fatalf("GetCatalogSummary: %v", err)
	}
	if summary.TotalGames != 120 {
		t.Errorf("TotalGames = %d, want 120", summary.TotalGames)
	}
}
