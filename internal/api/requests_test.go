// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/steampulse/internal/database/query"
)

func TestParseGamesRequest_Clamping(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	tests := []struct {
		name   string
		target string
		want   query.Page
	}{
		{"defaults", "/games", query.Page{Number: 1, Size: 20}},
		{"explorer size", "/games?page=2&limit=50", query.Page{Number: 2, Size: 50}},
		{"page zero", "/games?page=0", query.Page{Number: 1, Size: 20}},
		{"negative page", "/games?page=-4", query.Page{Number: 1, Size: 20}},
		{"garbage page", "/games?page=two", query.Page{Number: 1, Size: 20}},
		{"limit too large", "/games?limit=5000", query.Page{Number: 1, Size: 50}},
		{"limit zero", "/games?limit=0", query.Page{Number: 1, Size: 20}},
		{"float limit", "/games?limit=7.5", query.Page{Number: 1, Size: 20}},
		{"huge page", "/games?page=576460752303423489&limit=32", query.Page{Number: query.MaxPageNumber, Size: 32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, page := parseGamesRequest(httptest.NewRequest(http.MethodGet, tt.target, nil), opts)
			if page != tt.want {
				t.Errorf("page = %+v, want %+v", page, tt.want)
			}
			if page.Offset() < 0 {
				t.Errorf("Offset() = %d, want >= 0", page.Offset())
			}
		})
	}
}

func TestParseGamesRequest_DropsInvalidFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		target        string
		wantMinPrice  bool
		wantMaxPrice  bool
		wantMinRating bool
		wantIsFree    bool
	}{
		{"all valid", "/games?minPrice=0&maxPrice=10&minRating=50&isFree=true", true, true, true, true},
		{"negative price", "/games?minPrice=-1&maxPrice=-2", false, false, false, false},
		{"not a number", "/games?minPrice=cheap&minRating=great", false, false, false, false},
		{"NaN price", "/games?maxPrice=NaN", false, false, false, false},
		{"rating above 100", "/games?minRating=101", false, false, false, false},
		{"rating bounds", "/games?minRating=100", false, false, true, false},
		{"bad bool", "/games?isFree=maybe", false, false, false, false},
		{"numeric bool", "/games?isFree=1", false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, _ := parseGamesRequest(httptest.NewRequest(http.MethodGet, tt.target, nil), DefaultOptions())
			if (f.MinPrice != nil) != tt.wantMinPrice {
				t.Errorf("MinPrice = %v, want set=%v", f.MinPrice, tt.wantMinPrice)
			}
			if (f.MaxPrice != nil) != tt.wantMaxPrice {
				t.Errorf("MaxPrice = %v, want set=%v", f.MaxPrice, tt.wantMaxPrice)
			}
			if (f.MinRating != nil) != tt.wantMinRating {
				t.Errorf("MinRating = %v, want set=%v", f.MinRating, tt.wantMinRating)
			}
			if (f.IsFree != nil) != tt.wantIsFree {
				t.Errorf("IsFree = %v, want set=%v", f.IsFree, tt.wantIsFree)
			}
		})
	}
}

func TestParseGamesRequest_Text(t *testing.T) {
	t.Parallel()

	f, _ := parseGamesRequest(httptest.NewRequest(http.MethodGet, "/games?search=%20100%25%20Orange&genre=%20RPG%20", nil), DefaultOptions())
	if f.Search != "100% Orange" {
		t.Errorf("Search = %q", f.Search)
	}
	if f.Genre != "RPG" {
		t.Errorf("Genre = %q", f.Genre)
	}
}

func TestHypeCutoff_Clamp(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeStore{})
	got := h.hypeCutoff(httptest.NewRequest(http.MethodGet, "/hype?days=999999", nil))
	if want := testNow.AddDate(0, 0, -maxHypeDays); got.Year != want.Year() || got.Month != want.Month() || got.Day != want.Day() {
		t.Errorf("cutoff = %v, want %v", got, want.Format("2006-01-02"))
	}
}
