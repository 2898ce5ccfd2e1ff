// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package query

import "math"

// MaxPageNumber bounds Page.Number so Offset stays within int range for
// any size up to MaxPageNumber.
const MaxPageNumber = math.MaxInt32

// Page is a 1-based page of results.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps number to [1, MaxPageNumber] and size to [1, maxSize].
// A size below 1 becomes defaultSize.
func NewPage(number, size, defaultSize, maxSize int) Page {
	number = min(max(number, 1), MaxPageNumber)
	if size < 1 {
		size = defaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	size = min(max(size, 1), MaxPageNumber)
	return Page{Number: number, Size: size}
}

// Offset returns (Number-1) * Size.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns the page count needed for total rows.
func (p Page) TotalPages(total int64) int {
	if p.Size < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
