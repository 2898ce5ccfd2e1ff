// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package aggregate

import (
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/models"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func date(y, m, d int) *civil.Date {
	return &civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func floatEq(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %v", name, want)
	}
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, *got, want)
	}
}

func sampleGames() []models.Game {
	return []models.Game{
		{AppID: 1, Name: "Alpha", Price: 0, IsFree: true, PrimaryGenre: strPtr("Action"), Metacritic: intPtr(80), TotalReviews: 1000, ReleaseDate: date(2015, 3, 1), Publisher: "Valve"},
		{AppID: 2, Name: "Beta", Price: 499, PrimaryGenre: strPtr("Action"), Metacritic: intPtr(70), TotalReviews: 200, ReleaseDate: date(2015, 6, 1), Publisher: "Valve"},
		{AppID: 3, Name: "Gamma", Price: 199, PrimaryGenre: strPtr("Indie"), TotalReviews: 50, ReleaseDate: date(2020, 1, 1), Publisher: "Indie Co"},
		{AppID: 4, Name: "Delta", Price: 2499, PrimaryGenre: strPtr("RPG"), Metacritic: intPtr(91), TotalReviews: 5000, ReleaseDate: date(2009, 1, 1), Publisher: "Bethesda"},
		{AppID: 5, Name: "Epsilon", Price: 999, PrimaryGenre: nil, TotalReviews: 0, ReleaseDate: nil, Publisher: ""},
	}
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v        float64
		decimals int
		want     float64
	}{
		{1.005, 1, 1.0},
		{2.25, 1, 2.3},
		{-2.25, 1, -2.3},
		{10.0 / 3.0, 2, 3.33},
		{66.666, 1, 66.7},
		{5, 0, 5},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.decimals); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestEmptySetPolicy(t *testing.T) {
	t.Parallel()

	if Average(nil) != nil {
		t.Error("Average(nil) should be nil")
	}
	if Median(nil) != nil {
		t.Error("Median(nil) should be nil")
	}
	if Percentage(3, 0) != nil {
		t.Error("Percentage with zero total should be nil")
	}

	stats := DashboardStatsFromGames(nil)
	if stats.TotalGames != 0 || stats.FreeGames != 0 || stats.PaidGames != 0 || stats.TotalReviews != 0 {
		t.Errorf("counts over empty set should be zero, got %+v", stats)
	}
	if stats.AvgPrice != nil || stats.AvgMetacritic != nil || stats.MedianPrice != nil || stats.FreePercentage != nil {
		t.Errorf("averages over empty set should be nil, got %+v", stats)
	}
}

func TestMedian(t *testing.T) {
	t.Parallel()

	odd := []float64{5, 1, 3}
	floatEq(t, "odd", Median(odd), 3)
	if odd[0] != 5 {
		t.Error("Median must not reorder its input")
	}
	floatEq(t, "even", Median([]float64{1, 2, 3, 4}), 2.5)
	floatEq(t, "single", Median([]float64{7.126}), 7.13)
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	floatEq(t, "1/3", Percentage(1, 3), 33.3)
	floatEq(t, "2/3", Percentage(2, 3), 66.7)
	floatEq(t, "all", Percentage(4, 4), 100)
}

func TestDashboardStatsFromGames(t *testing.T) {
	t.Parallel()

	stats := DashboardStatsFromGames(sampleGames())

	if stats.TotalGames != 5 {
		t.Errorf("TotalGames = %d, want 5", stats.TotalGames)
	}
	if stats.FreeGames+stats.PaidGames != stats.TotalGames {
		t.Errorf("free %d + paid %d != total %d", stats.FreeGames, stats.PaidGames, stats.TotalGames)
	}
	if stats.TotalReviews != 6250 {
		t.Errorf("TotalReviews = %d, want 6250", stats.TotalReviews)
	}
	floatEq(t, "AvgPrice", stats.AvgPrice, 839.2)
	floatEq(t, "AvgMetacritic", stats.AvgMetacritic, 80.3)
	floatEq(t, "MedianPrice", stats.MedianPrice, 499)
	floatEq(t, "FreePercentage", stats.FreePercentage, 20)
}

func TestYearlyTrendFromGames(t *testing.T) {
	t.Parallel()

	trend := YearlyTrendFromGames(sampleGames(), 2019)
	if len(trend) != 1 {
		t.Fatalf("got %d years, want 1 (2009 and 2020 are out of range): %+v", len(trend), trend)
	}
	if trend[0].Year != 2015 || trend[0].GameCount != 2 {
		t.Errorf("unexpected row %+v", trend[0])
	}
	floatEq(t, "AvgPrice", trend[0].AvgPrice, 249.5)
	floatEq(t, "AvgRating", trend[0].AvgRating, 75)

	trend = YearlyTrendFromGames(sampleGames(), 2026)
	if len(trend) != 2 || trend[0].Year != 2015 || trend[1].Year != 2020 {
		t.Fatalf("years should ascend, got %+v", trend)
	}
	if trend[1].AvgRating != nil {
		t.Errorf("year without ratings should have nil AvgRating")
	}
}

func TestTopGenresFromGames(t *testing.T) {
	t.Parallel()

	games := sampleGames()
	games = append(games, models.Game{AppID: 6, Name: "Zeta", Price: 10, PrimaryGenre: strPtr("Casual")})

	top := TopGenresFromGames(games, 8)
	want := []string{"Action", "Casual", "Indie", "RPG"}
	if len(top) != len(want) {
		t.Fatalf("got %d genres, want %d", len(top), len(want))
	}
	for i, g := range want {
		if top[i].Genre != g {
			t.Errorf("top[%d] = %s, want %s", i, top[i].Genre, g)
		}
	}
	if top[0].GameCount != 2 {
		t.Errorf("Action count = %d, want 2", top[0].GameCount)
	}

	capped := TopGenresFromGames(games, 2)
	if len(capped) != 2 || capped[1].Genre != "Casual" {
		t.Errorf("cap should keep the first two by count then name, got %+v", capped)
	}
}

func TestPublisherStatsFromGames(t *testing.T) {
	t.Parallel()

	pubs := PublisherStatsFromGames(sampleGames(), 50)
	if len(pubs) != 3 {
		t.Fatalf("got %d publishers, want 3 (empty publisher excluded)", len(pubs))
	}
	if pubs[0].Publisher != "Valve" || pubs[0].TotalGames != 2 {
		t.Errorf("first publisher = %+v", pubs[0])
	}
	if pubs[0].HighQualityGames != 1 {
		t.Errorf("Valve high quality = %d, want 1", pubs[0].HighQualityGames)
	}
	if pubs[1].Publisher != "Bethesda" || pubs[2].Publisher != "Indie Co" {
		t.Errorf("ties should order by name, got %s, %s", pubs[1].Publisher, pubs[2].Publisher)
	}
	if pubs[2].AvgRating != nil {
		t.Error("publisher without ratings should have nil AvgRating")
	}
}

func TestPriceDistributionFromGames(t *testing.T) {
	t.Parallel()

	dist := PriceDistributionFromGames(sampleGames())
	want := map[string]int64{"Free": 1, "Under 200": 1, "200-499": 1, "500-999": 1, "2000+": 1}
	if len(dist) != len(want) {
		t.Fatalf("got %d buckets, want %d: %+v", len(dist), len(want), dist)
	}
	for _, b := range dist {
		if want[b.PriceBucket] != b.GameCount {
			t.Errorf("bucket %s = %d, want %d", b.PriceBucket, b.GameCount, want[b.PriceBucket])
		}
	}
	if dist[0].PriceBucket != "Free" || dist[len(dist)-1].PriceBucket != "2000+" {
		t.Errorf("buckets should follow band order, got %+v", dist)
	}
}

func TestPriceBandIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price  float64
		isFree bool
		want   string
	}{
		{0, true, "Free"},
		{0, false, "Free"},
		{199.99, false, "Under 200"},
		{200, false, "200-499"},
		{999, false, "500-999"},
		{1000, false, "1000-1999"},
		{1e6, false, "2000+"},
	}
	for _, tt := range tests {
		if got := PriceBands[PriceBandIndex(tt.price, tt.isFree)].Label; got != tt.want {
			t.Errorf("PriceBandIndex(%v, %v) = %s, want %s", tt.price, tt.isFree, got, tt.want)
		}
	}
}
