// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package models

import (
	"time"
)

// DashboardResponse composes the three dashboard sections. A section that
// failed holds its zero value and is named in Errors.
type DashboardResponse struct {
	Stats       DashboardStats    `json:"stats"`
	YearlyTrend []YearlyTrend     `json:"yearlyTrend"`
	TopGenres   []GenreCount      `json:"topGenres"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// HypeCategories splits the hype ranking by release recency.
type HypeCategories struct {
	New         []HypeScore `json:"new"`
	Recent      []HypeScore `json:"recent"`
	Established []HypeScore `json:"established"`
}

// HypeResponse is the /hype payload.
type HypeResponse struct {
	All        []HypeScore    `json:"all"`
	Categories HypeCategories `json:"categories"`
}

// PublisherInsights are three independent top lists over publisher rows.
type PublisherInsights struct {
	Volume     []PublisherStats `json:"volume"`
	Quality    []PublisherStats `json:"quality"`
	Consistent []PublisherStats `json:"consistent"`
}

// PublishersResponse is the /publishers payload.
type PublishersResponse struct {
	Publishers []PublisherStats  `json:"publishers"`
	Insights   PublisherInsights `json:"insights"`
}

// ErrorResponse is the body of every failed JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports liveness of the API and its warehouse.
type HealthResponse struct {
	Status    string    `json:"status"`
	Backend   string    `json:"backend"`
	Circuit   string    `json:"circuit"`
	Timestamp time.Time `json:"timestamp"`
}
