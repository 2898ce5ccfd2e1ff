// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package lake

// AppDetails is the subset of a Steam store appdetails payload used by
// staging. ingested_at and steam_id are added by the ingest job.
type AppDetails struct {
	Type            string           `json:"type"`
	Name            string           `json:"name"`
	SteamAppID      int64            `json:"steam_appid"`
	SteamID         int64            `json:"steam_id,omitempty"`
	IsFree          bool             `json:"is_free"`
	HeaderImage     string           `json:"header_image,omitempty"`
	Publishers      []string         `json:"publishers,omitempty"`
	Genres          []Genre          `json:"genres,omitempty"`
	PriceOverview   *PriceOverview   `json:"price_overview,omitempty"`
	Metacritic      *Metacritic      `json:"metacritic,omitempty"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
	ReleaseDate     *ReleaseDate     `json:"release_date,omitempty"`
	IngestedAt      string           `json:"ingested_at,omitempty"`
}

// Genre is a store genre tag.
type Genre struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// PriceOverview amounts are in the minor unit of Currency.
type PriceOverview struct {
	Currency        string `json:"currency"`
	Initial         int64  `json:"initial"`
	Final           int64  `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
	FinalFormatted  string `json:"final_formatted,omitempty"`
}

// Metacritic is the critic score block.
type Metacritic struct {
	Score int    `json:"score"`
	URL   string `json:"url,omitempty"`
}

// Recommendations is the user review count block.
type Recommendations struct {
	Total int64 `json:"total"`
}

// ReleaseDate is free text as shown on the store page.
type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// AppID returns steam_appid, falling back to the ingest job's steam_id.
func (a *AppDetails) AppID() int64 {
	if a.SteamAppID != 0 {
		return a.SteamAppID
	}
	return a.SteamID
}
