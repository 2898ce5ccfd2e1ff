// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

// Package aggregate holds the aggregation rules shared by the warehouse
// query catalog and the Go-side rollups: rounding precision, the null
// policy for empty sets, the median definition and the price bands.
//
// The query catalog renders ROUND(x, CurrencyDecimals) and friends from
// these constants, and the rollups in this package apply the same rules
// to raw rows, so a warehouse-aggregated row and a locally recomputed row
// for the same data are equal.
package aggregate

import (
	"math"
	"slices"
)

// Rounding precision.
const (
	// CurrencyDecimals applies to prices and price averages.
	CurrencyDecimals = 2
	// ScoreDecimals applies to rating averages and percentages.
	ScoreDecimals = 1
)

// Catalog thresholds.
const (
	// HighQualityRating is the minimum metacritic score of a high quality game.
	HighQualityRating = 75
	// FirstTrendYear is the earliest release year on the yearly trend chart.
	FirstTrendYear = 2010
)

// Round rounds half away from zero to the given number of decimals,
// matching ROUND in BigQuery and DuckDB.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// RoundCurrency rounds to CurrencyDecimals.
func RoundCurrency(v float64) float64 { return Round(v, CurrencyDecimals) }

// RoundScore rounds to ScoreDecimals.
func RoundScore(v float64) float64 { return Round(v, ScoreDecimals) }

// Average returns the unrounded mean, or nil for an empty set.
func Average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

// RoundedAverage returns Average rounded to decimals, or nil for an empty set.
func RoundedAverage(values []float64, decimals int) *float64 {
	avg := Average(values)
	if avg == nil {
		return nil
	}
	r := Round(*avg, decimals)
	return &r
}

// Median returns the 50th percentile with linear interpolation between
// the two middle values of an even-sized set, rounded to currency
// precision. It returns nil for an empty set. values is not modified.
func Median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	m := sorted[mid]
	if len(sorted)%2 == 0 {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	m = RoundCurrency(m)
	return &m
}

// Percentage returns round(part / total * 100, ScoreDecimals), or nil when
// total is zero.
func Percentage(part, total int64) *float64 {
	if total == 0 {
		return nil
	}
	p := RoundScore(float64(part) / float64(total) * 100)
	return &p
}
