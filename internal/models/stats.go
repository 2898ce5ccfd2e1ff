// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package models

import (
	"cloud.google.com/go/civil"
)

// DashboardStats are the catalog-wide KPI cards.
// FreeGames + PaidGames == TotalGames.
type DashboardStats struct {
	TotalGames     int64    `json:"total_games" validate:"gte=0"`
	AvgPrice       *float64 `json:"avg_price" validate:"omitempty,gte=0"`
	AvgMetacritic  *float64 `json:"avg_metacritic" validate:"omitempty,gte=0,lte=100"`
	MedianPrice    *float64 `json:"median_price" validate:"omitempty,gte=0"`
	FreeGames      int64    `json:"free_games" validate:"gte=0"`
	PaidGames      int64    `json:"paid_games" validate:"gte=0"`
	TotalReviews   int64    `json:"total_reviews" validate:"gte=0"`
	FreePercentage *float64 `json:"free_percentage" validate:"omitempty,gte=0,lte=100"`
}

// YearlyTrend is one release year of the trend chart.
type YearlyTrend struct {
	Year      int      `json:"year" validate:"gte=1970"`
	GameCount int64    `json:"game_count" validate:"gte=0"`
	AvgPrice  *float64 `json:"avg_price" validate:"omitempty,gte=0"`
	AvgRating *float64 `json:"avg_rating" validate:"omitempty,gte=0,lte=100"`
}

// GenreCount is one bar of the dashboard top-genres chart.
type GenreCount struct {
	Genre     string   `json:"genre" validate:"required"`
	GameCount int64    `json:"game_count" validate:"gte=0"`
	AvgPrice  *float64 `json:"avg_price" validate:"omitempty,gte=0"`
	AvgRating *float64 `json:"avg_rating" validate:"omitempty,gte=0,lte=100"`
}

// GenreName is one entry of the explorer genre dropdown.
type GenreName struct {
	Genre string `json:"genre" validate:"required"`
}

// GenreStats is one row of the mart_trends rollup.
type GenreStats struct {
	Genre      string   `json:"genre" validate:"required"`
	TotalGames int64    `json:"total_games" validate:"gte=0"`
	AvgPrice   *float64 `json:"avg_price" validate:"omitempty,gte=0"`
	AvgRating  *float64 `json:"avg_rating" validate:"omitempty,gte=0,lte=100"`
}

// PublisherStats aggregates the catalog of one publisher.
// HighQualityGames counts titles rated at or above the high quality threshold.
type PublisherStats struct {
	Publisher        string   `json:"publisher" validate:"required"`
	TotalGames       int64    `json:"total_games" validate:"gte=0"`
	AvgRating        *float64 `json:"avg_rating" validate:"omitempty,gte=0,lte=100"`
	TotalReviews     int64    `json:"total_reviews" validate:"gte=0"`
	AvgPrice         *float64 `json:"avg_price" validate:"omitempty,gte=0"`
	HighQualityGames int64    `json:"high_quality_games" validate:"gte=0"`
}

// HypeScore ranks a recent release by reviews per day since release.
// Score is nil when DaysSinceRelease is not positive.
type HypeScore struct {
	AppID            int64      `json:"appid" validate:"gte=0"`
	Name             string     `json:"name"`
	PrimaryGenre     *string    `json:"primary_genre"`
	TotalReviews     int64      `json:"total_reviews" validate:"gte=0"`
	ReleaseDate      civil.Date `json:"release_date"`
	DaysSinceRelease *int       `json:"days_since_release"`
	HypeScore        *float64   `json:"hype_score" validate:"omitempty,gte=0"`
	Metacritic       *int       `json:"metacritic" validate:"omitempty,gte=0,lte=100"`
}

// PriceBucket is one band of the price distribution chart.
type PriceBucket struct {
	PriceBucket string `json:"price_bucket" validate:"required"`
	GameCount   int64  `json:"game_count" validate:"gte=0"`
}

// CatalogSummary is the legacy three-number summary served by /stats.
type CatalogSummary struct {
	TotalGames    int64    `json:"total_games" validate:"gte=0"`
	FreeGames     int64    `json:"free_games" validate:"gte=0"`
	AvgMetacritic *float64 `json:"avg_metacritic" validate:"omitempty,gte=0,lte=100"`
}
