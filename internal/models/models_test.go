// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package models

import (
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/goccy/go-json"
)

func TestGame_JSONNullPolicy(t *testing.T) {
	t.Parallel()

	g := Game{AppID: 730, Name: "Counter-Strike 2", IsFree: true, Genres: []string{"Action"}}
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`"appid":730`,
		`"metacritic":null`,
		`"primary_genre":null`,
		`"release_date":null`,
		`"is_free":true`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, "header_image") {
		t.Errorf("empty header_image should be omitted: %s", out)
	}
}

func TestHypeScore_ReleaseDateFormat(t *testing.T) {
	t.Parallel()

	h := HypeScore{AppID: 1, ReleaseDate: civil.Date{Year: 2024, Month: 3, Day: 9}}
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"release_date":"2024-03-09"`) {
		t.Errorf("unexpected date encoding: %s", data)
	}
	if !strings.Contains(string(data), `"hype_score":null`) {
		t.Errorf("nil hype score should be null: %s", data)
	}
}

func TestDashboardResponse_OmitsEmptyErrors(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DashboardResponse{YearlyTrend: []YearlyTrend{}, TopGenres: []GenreCount{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if strings.Contains(out, `"errors"`) {
		t.Errorf("errors should be omitted when empty: %s", out)
	}
	if !strings.Contains(out, `"yearlyTrend":[]`) || !strings.Contains(out, `"topGenres":[]`) {
		t.Errorf("expected empty arrays, got %s", out)
	}
}
