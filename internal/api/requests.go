// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package api

import (
	"net/http"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/tomtom215/steampulse/internal/database/query"
	"github.com/tomtom215/steampulse/internal/models"
	"github.com/tomtom215/steampulse/internal/validation"
)

// maxHypeDays bounds the ?days window of /hype.
const maxHypeDays = 3650

// gamesRequest holds the parsed /games parameters. Fields that fail
// validation are dropped rather than rejected.
type gamesRequest struct {
	Page      int
	Limit     int
	Search    string
	Genre     string
	MinPrice  *float64 `validate:"omitempty,gte=0"`
	MaxPrice  *float64 `validate:"omitempty,gte=0"`
	MinRating *int     `validate:"omitempty,gte=0,lte=100"`
	IsFree    *bool
}

// parseGamesRequest reads page, limit, search, genre, minPrice, maxPrice,
// minRating and isFree. Malformed values are ignored.
func parseGamesRequest(r *http.Request, opts Options) (models.GameFilter, query.Page) {
	q := r.URL.Query()
	req := gamesRequest{
		Page:      getIntParam(r, "page", 1),
		Limit:     getIntParam(r, "limit", opts.DefaultPageSize),
		Search:    strings.TrimSpace(q.Get("search")),
		Genre:     strings.TrimSpace(q.Get("genre")),
		MinPrice:  floatParam(q.Get("minPrice")),
		MaxPrice:  floatParam(q.Get("maxPrice")),
		MinRating: intParam(q.Get("minRating")),
		IsFree:    boolParam(q.Get("isFree")),
	}
	dropInvalid(&req)

	filter := models.GameFilter{
		Search:    req.Search,
		Genre:     req.Genre,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		MinRating: req.MinRating,
		IsFree:    req.IsFree,
	}
	return filter, query.NewPage(req.Page, req.Limit, opts.DefaultPageSize, opts.MaxPageSize)
}

func dropInvalid(req *gamesRequest) {
	verrs := validation.ValidateStruct(req)
	if verrs == nil {
		return
	}
	for _, fe := range verrs.Errors() {
		switch fe.Field() {
		case "MinPrice":
			req.MinPrice = nil
		case "MaxPrice":
			req.MaxPrice = nil
		case "MinRating":
			req.MinRating = nil
		}
	}
}

// hypeCutoff returns today minus ?days, or the configured cutoff when
// days is absent or not a positive integer.
func (h *Handler) hypeCutoff(r *http.Request) civil.Date {
	days := getIntParam(r, "days", 0)
	if days <= 0 {
		return h.opts.HypeCutoff
	}
	days = min(days, maxHypeDays)
	return civil.DateOf(h.now()).AddDays(-days)
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	if v := intParam(r.URL.Query().Get(key)); v != nil {
		return *v
	}
	return defaultValue
}

func intParam(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

func floatParam(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func boolParam(value string) *bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}
