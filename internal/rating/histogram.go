// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package rating maintains the per-game vote histogram and the aggregates
// derived from it: the mean rating and the modal "top" rating.
//
// The histogram is the sole durable state; mean and top are pure functions
// of it and are recomputed on every vote. Updates to the same game are
// serialized through per-entity locks held across the read-modify-write
// (see Aggregate).
package rating

// DefaultMeanThreshold is the minimum number of votes before the mean is
// reported. Below it the externally visible mean is 0, although the raw
// mean is still persisted so crossing the threshold needs no backfill.
const DefaultMeanThreshold = 5

// Histogram maps a rating value to its vote count. Zero-count buckets are
// removed, so adding and then removing a vote restores the map exactly.
//
// JSON encoding uses string keys ({"4": 12, "5": 3}), matching how the
// storage layer persists the column.
type Histogram map[int]int

// Clone returns an independent copy.
func (h Histogram) Clone() Histogram {
	out := make(Histogram, len(h))
	for v, c := range h {
		out[v] = c
	}
	return out
}

// Add records one vote for value.
func (h Histogram) Add(value int) {
	h[value]++
}

// Remove retracts one vote for value, floored at zero. Empty buckets are
// deleted rather than kept at zero.
func (h Histogram) Remove(value int) {
	c, ok := h[value]
	if !ok {
		return
	}
	if c <= 1 {
		delete(h, value)
		return
	}
	h[value] = c - 1
}

// Total returns the total vote count.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h {
		total += c
	}
	return total
}

// Top returns the modal rating value: the bucket with the strictly
// greatest vote count. Ties are broken by the numerically greater rating
// value. An empty histogram has top 0.
func (h Histogram) Top() int {
	top, best := 0, 0
	for value, count := range h {
		if count > best || (count == best && value > top) {
			top = value
			best = count
		}
	}
	return top
}

// Mean returns the raw weighted average over all buckets, 0 when empty.
func (h Histogram) Mean() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for value, count := range h {
		sum += value * count
	}
	return float64(sum) / float64(total)
}

// ReportedMean suppresses the mean while the vote count is below the
// threshold: early votes would otherwise dominate the displayed rating.
func (h Histogram) ReportedMean(threshold int) float64 {
	if h.Total() < threshold {
		return 0
	}
	return h.Mean()
}
