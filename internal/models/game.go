// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package models

import (
	"cloud.google.com/go/civil"
)

// Game is one catalog title as staged in stg_games.
// Price is in major currency units (INR); is_free implies price 0 in
// well-formed source data but is not enforced.
type Game struct {
	AppID        int64       `json:"appid" validate:"gte=0"`
	Name         string      `json:"name"`
	Price        float64     `json:"price" validate:"gte=0"`
	IsFree       bool        `json:"is_free"`
	Genres       []string    `json:"genres"`
	PrimaryGenre *string     `json:"primary_genre"`
	Metacritic   *int        `json:"metacritic" validate:"omitempty,gte=0,lte=100"`
	TotalReviews int64       `json:"total_reviews" validate:"gte=0"`
	ReleaseDate  *civil.Date `json:"release_date"`
	Publisher    string      `json:"publisher"`
	HeaderImage  string      `json:"header_image,omitempty"`
}

// GameFilter narrows the explorer table. Zero values mean "no filter".
type GameFilter struct {
	Search    string
	Genre     string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *int
	IsFree    *bool
}

// GamesPage is one page of the explorer table.
type GamesPage struct {
	Data       []Game `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}
