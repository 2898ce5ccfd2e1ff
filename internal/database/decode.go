// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package database

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"cloud.google.com/go/civil"
	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/steampulse/internal/aggregate"
	"github.com/tomtom215/steampulse/internal/models"
	"github.com/tomtom215/steampulse/internal/validation"
)

// rowReader reads typed columns from a Row, remembering the first
// conversion failure. NULL reads as the zero value or a nil pointer.
type rowReader struct {
	row Row
	err error
}

func (r *rowReader) fail(col string, v any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: column %q: unexpected %T", ErrDecode, col, v)
	}
}

func (r *rowReader) int64(col string) int64 {
	v := r.row[col]
	if v == nil {
		return 0
	}
	n, ok := toInt64(v)
	if !ok {
		r.fail(col, v)
	}
	return n
}

func (r *rowReader) intPtr(col string) *int {
	v := r.row[col]
	if v == nil {
		return nil
	}
	n, ok := toInt64(v)
	if !ok {
		r.fail(col, v)
		return nil
	}
	i := int(n)
	return &i
}

func (r *rowReader) float(col string) float64 {
	if f := r.floatPtr(col); f != nil {
		return *f
	}
	return 0
}

func (r *rowReader) floatPtr(col string) *float64 {
	v := r.row[col]
	if v == nil {
		return nil
	}
	f, ok := toFloat64(v)
	if !ok || math.IsNaN(f) {
		r.fail(col, v)
		return nil
	}
	return &f
}

func (r *rowReader) bool(col string) bool {
	switch b := r.row[col].(type) {
	case nil:
		return false
	case bool:
		return b
	default:
		r.fail(col, b)
		return false
	}
}

func (r *rowReader) string(col string) string {
	if s := r.stringPtr(col); s != nil {
		return *s
	}
	return ""
}

func (r *rowReader) stringPtr(col string) *string {
	switch s := r.row[col].(type) {
	case nil:
		return nil
	case string:
		return &s
	case []byte:
		str := string(s)
		return &str
	default:
		r.fail(col, s)
		return nil
	}
}

func (r *rowReader) date(col string) civil.Date {
	if d := r.datePtr(col); d != nil {
		return *d
	}
	return civil.Date{}
}

func (r *rowReader) datePtr(col string) *civil.Date {
	var d civil.Date
	switch v := r.row[col].(type) {
	case nil:
		return nil
	case civil.Date:
		d = v
	case time.Time:
		d = civil.DateOf(v)
	case string:
		parsed, err := civil.ParseDate(v)
		if err != nil {
			r.fail(col, v)
			return nil
		}
		d = parsed
	default:
		r.fail(col, v)
		return nil
	}
	return &d
}

// strings reads a list column. NULL reads as an empty list.
func (r *rowReader) strings(col string) []string {
	switch v := r.row[col].(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				r.fail(col, item)
				return []string{}
			}
			out = append(out, s)
		}
		return out
	default:
		r.fail(col, v)
		return []string{}
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case *big.Int:
		if !n.IsInt64() {
			return 0, false
		}
		return n.Int64(), true
	case *big.Rat:
		if !n.IsInt() || !n.Num().IsInt64() {
			return 0, false
		}
		return n.Num().Int64(), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int:
		return float64(n), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	case *big.Rat:
		f, _ := n.Float64()
		return f, true
	case duckdb.Decimal:
		return n.Float64(), true
	default:
		return 0, false
	}
}

// decodeRow decodes and validates one row.
func decodeRow[T any](row Row, decode func(*rowReader) T) (T, error) {
	var zero T
	r := &rowReader{row: row}
	v := decode(r)
	if r.err != nil {
		return zero, r.err
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		return zero, fmt.Errorf("%w: %w", ErrDecode, verr)
	}
	return v, nil
}

// decodeRows decodes every row; the result is never nil.
func decodeRows[T any](rows []Row, decode func(*rowReader) T) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		v, err := decodeRow(row, decode)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// matchCount is the CountGames row.
type matchCount struct {
	Total int64 `validate:"gte=0"`
}

func decodeMatchCount(r *rowReader) matchCount {
	return matchCount{Total: r.int64("total")}
}

func decodeGame(r *rowReader) models.Game {
	return models.Game{
		AppID:        r.int64("appid"),
		Name:         r.string("name"),
		Price:        r.float("price"),
		IsFree:       r.bool("is_free"),
		Genres:       r.strings("genres"),
		PrimaryGenre: r.stringPtr("primary_genre"),
		Metacritic:   r.intPtr("metacritic"),
		TotalReviews: r.int64("total_reviews"),
		ReleaseDate:  r.datePtr("release_date"),
		Publisher:    r.string("publisher"),
		HeaderImage:  r.string("header_image"),
	}
}

func decodeDashboardStats(r *rowReader) models.DashboardStats {
	return models.DashboardStats{
		TotalGames:     r.int64("total_games"),
		AvgPrice:       r.floatPtr("avg_price"),
		AvgMetacritic:  r.floatPtr("avg_metacritic"),
		MedianPrice:    r.floatPtr("median_price"),
		FreeGames:      r.int64("free_games"),
		PaidGames:      r.int64("paid_games"),
		TotalReviews:   r.int64("total_reviews"),
		FreePercentage: r.floatPtr("free_percentage"),
	}
}

func decodeYearlyTrend(r *rowReader) models.YearlyTrend {
	return models.YearlyTrend{
		Year:      int(r.int64("year")),
		GameCount: r.int64("game_count"),
		AvgPrice:  r.floatPtr("avg_price"),
		AvgRating: r.floatPtr("avg_rating"),
	}
}

func decodeGenreCount(r *rowReader) models.GenreCount {
	return models.GenreCount{
		Genre:     r.string("genre"),
		GameCount: r.int64("game_count"),
		AvgPrice:  r.floatPtr("avg_price"),
		AvgRating: r.floatPtr("avg_rating"),
	}
}

func decodeGenreName(r *rowReader) models.GenreName {
	return models.GenreName{Genre: r.string("genre")}
}

func decodeGenreStats(r *rowReader) models.GenreStats {
	return models.GenreStats{
		Genre:      r.string("genre"),
		TotalGames: r.int64("total_games"),
		AvgPrice:   r.floatPtr("avg_price"),
		AvgRating:  r.floatPtr("avg_rating"),
	}
}

func decodePublisherStats(r *rowReader) models.PublisherStats {
	return models.PublisherStats{
		Publisher:        r.string("publisher"),
		TotalGames:       r.int64("total_games"),
		AvgRating:        r.floatPtr("avg_rating"),
		TotalReviews:     r.int64("total_reviews"),
		AvgPrice:         r.floatPtr("avg_price"),
		HighQualityGames: r.int64("high_quality_games"),
	}
}

func decodeHypeScore(r *rowReader) models.HypeScore {
	return models.HypeScore{
		AppID:            r.int64("appid"),
		Name:             r.string("name"),
		PrimaryGenre:     r.stringPtr("primary_genre"),
		TotalReviews:     r.int64("total_reviews"),
		ReleaseDate:      r.date("release_date"),
		DaysSinceRelease: r.intPtr("days_since_release"),
		HypeScore:        r.floatPtr("hype_score"),
		Metacritic:       r.intPtr("metacritic"),
	}
}

func decodeCatalogSummary(r *rowReader) models.CatalogSummary {
	return models.CatalogSummary{
		TotalGames:    r.int64("total_games"),
		FreeGames:     r.int64("free_games"),
		AvgMetacritic: r.floatPtr("avg_metacritic"),
	}
}

// decodePriceBucket maps the band index column onto its label.
func decodePriceBucket(r *rowReader) models.PriceBucket {
	band := r.int64("band")
	if band < 0 || band >= int64(len(aggregate.PriceBands)) {
		if r.err == nil {
			r.err = fmt.Errorf("%w: price band %d out of range", ErrDecode, band)
		}
		return models.PriceBucket{}
	}
	return models.PriceBucket{
		PriceBucket: aggregate.PriceBands[band].Label,
		GameCount:   r.int64("game_count"),
	}
}
