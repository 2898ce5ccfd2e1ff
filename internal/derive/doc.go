// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

/*
Package derive turns fetched aggregate rows into ranked and categorized
views without going back to the warehouse.

All functions are pure: they never mutate their input, never return nil
slices, and degrade to null or empty values instead of failing.

Hype:

	score := derive.HypeScore(100, 10)       // 10.0
	cats := derive.CategorizeHype(rows, now) // new / recent / established

A hype bucket that ends up empty is backfilled from the full ranked list:
new takes ranks 1-5, recent takes ranks 6-10 and established takes ranks
1-10. The windows overlap on purpose and are clipped to the list length.

Publishers:

	insights := derive.PublisherInsights(rows)

Volume, quality and consistent are independent top-5 views. A publisher
may appear in more than one. Sorting is stable and publishers without a
rating sort last.
*/
package derive
