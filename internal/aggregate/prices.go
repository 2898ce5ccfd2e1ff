// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package aggregate

import (
	"math"
)

// PriceBand is one band of the price distribution. A game belongs to the
// first band whose UpperBound exceeds its price; free games always land
// in the first band.
type PriceBand struct {
	Label      string
	UpperBound float64 // exclusive; +Inf for the last band
}

// PriceBands are ordered ascending. Prices are INR major units.
var PriceBands = []PriceBand{
	{Label: "Free", UpperBound: 0},
	{Label: "Under 200", UpperBound: 200},
	{Label: "200-499", UpperBound: 500},
	{Label: "500-999", UpperBound: 1000},
	{Label: "1000-1999", UpperBound: 2000},
	{Label: "2000+", UpperBound: math.Inf(1)},
}

// PriceBandIndex returns the index into PriceBands for a game.
func PriceBandIndex(price float64, isFree bool) int {
	if isFree || price <= 0 {
		return 0
	}
	for i := 1; i < len(PriceBands); i++ {
		if price < PriceBands[i].UpperBound {
			return i
		}
	}
	return len(PriceBands) - 1
}
