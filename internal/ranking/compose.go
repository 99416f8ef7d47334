// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package ranking merges promoted ("pinned") entries with organically
// ranked base lists into one deduplicated ordering. The merge is an
// explicit two-phase operation in memory, so it is testable without a
// database and independent of any query planner.
package ranking

import "sort"

// Mode selects the merge strategy.
type Mode int

const (
	// Stable concatenates pins ahead of the base order; used for curated
	// lists over attribute orderings such as "recently added".
	Stable Mode = iota
	// Relevance computes a window rank over the organic base and unions
	// it with pin ranks offset to sort ahead; used when the base carries
	// a relevance or recency comparator of its own.
	Relevance
)

// PinSet is an ordered list of promoted entity IDs for one curated list,
// with an optional inclusion predicate (e.g. "only if the game also
// matches the list's attribute filters"). Supplied by promotion
// configuration; read-only here.
type PinSet struct {
	IDs     []int64
	Include func(id int64) bool
}

// filtered returns the pin IDs that pass the inclusion predicate, in pin
// order, with duplicates removed.
func (p PinSet) filtered() []int64 {
	out := make([]int64, 0, len(p.IDs))
	seen := make(map[int64]struct{}, len(p.IDs))
	for _, id := range p.IDs {
		if _, dup := seen[id]; dup {
			continue
		}
		if p.Include != nil && !p.Include(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Compose merges base and pins into one ordered, deduplicated ID
// sequence. Every pinned ID precedes every unpinned base ID, pins keep
// their own order, and an ID appearing in both lists is emitted exactly
// once, at its pinned position.
//
// Empty pins degenerate to the identity transform on base; an empty base
// yields the (predicate-filtered) pins in order.
func Compose(base []int64, pins PinSet, mode Mode) []int64 {
	switch mode {
	case Relevance:
		return composeRelevance(base, pins)
	default:
		return composeStable(base, pins)
	}
}

// composeStable puts pins first in pin order, then the base sequence with
// pinned (and repeated) IDs removed.
func composeStable(base []int64, pins PinSet) []int64 {
	out := pins.filtered()
	seen := make(map[int64]struct{}, len(out)+len(base))
	for _, id := range out {
		seen[id] = struct{}{}
	}
	for _, id := range base {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// composeRelevance assigns each organic ID its window rank in base order
// and each pinned ID a negative rank derived from its pin position, then
// re-sorts the union by rank. Pinned ranks sort ahead of every organic
// rank; an ID in both sets keeps its pinned rank.
func composeRelevance(base []int64, pins PinSet) []int64 {
	pf := pins.filtered()
	rank := make(map[int64]int, len(pf)+len(base))
	for i, id := range pf {
		rank[id] = i - len(pf)
	}
	next := 0
	for _, id := range base {
		if _, pinned := rank[id]; pinned {
			continue
		}
		rank[id] = next
		next++
	}

	out := make([]int64, 0, len(rank))
	for id := range rank {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return rank[out[i]] < rank[out[j]]
	})
	return out
}
