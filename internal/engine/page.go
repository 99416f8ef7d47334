// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package engine is the pagination & count service: it turns a filter
// specification into an exactly-counted, deterministically ordered page of
// game IDs, selecting one of three execution paths (relational scan,
// search-merged, or composed/pinned).
package engine

// RankedPage is one page of ordered game IDs plus the exact total count
// for the filter and the cursor needed to request the next page. Pages
// are fresh computations; they cannot be resumed, only re-requested.
type RankedPage struct {
	IDs    []int64
	Count  int
	Offset int
	Limit  int
}

// HasNext reports whether another non-empty page may follow.
func (p RankedPage) HasNext() bool {
	return p.Offset+len(p.IDs) < p.Count
}

// NextOffset returns the offset of the following page.
func (p RankedPage) NextOffset() int {
	return p.Offset + p.Limit
}
