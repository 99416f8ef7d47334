// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package query builds structured, composable filter specifications from
// raw request parameters and turns them into parameterized SQL predicates.
//
// A FilterSpec is assembled once per request and never mutated afterwards.
// Filter categories combine with AND; multiple values within one category
// combine with OR (IN clauses). Malformed parameter values are dropped
// silently per value, never surfaced as request failures.
package query

import "time"

// DateRange is one inclusive released-date window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IntRange is an inclusive integer window, used for metacritic filtering.
type IntRange struct {
	Min int
	Max int
}

// FilterSpec is the immutable set of active filters and ordering for one
// catalog query. The zero value matches every game with the default
// ordering.
//
// Thread safety: a FilterSpec is safe for concurrent reads; the With*
// helpers return copies instead of mutating the receiver.
type FilterSpec struct {
	// Search is the optional free-text query routed to the search bridge.
	Search string

	PlatformIDs       []int64
	ParentPlatformIDs []int64
	StoreIDs          []int64
	GenreIDs          []int64
	CreatorIDs        []int64

	// DateRanges combine with OR: a game matches when its release date
	// falls inside any of the ranges.
	DateRanges []DateRange

	Metacritic *IntRange

	// Exclusion sets. ExcludeCollection removes games that belong to the
	// given collection; ExcludeAdditions removes DLC/expansions;
	// ExcludeParents removes games that have additions of their own;
	// ExcludeGameSeries removes games that belong to any series.
	ExcludeCollection int64
	ExcludeAdditions  bool
	ExcludeParents    bool
	ExcludeGameSeries bool
	ExcludeStores     []int64

	// IDs restricts the result to a known candidate set, e.g. a user's
	// library resolved by a relational pre-filter.
	IDs []int64

	Order Ordering
}

// HasSearch reports whether a free-text query is present.
func (s FilterSpec) HasSearch() bool {
	return s.Search != ""
}

// HasRelationalFilters reports whether any predicate besides the free-text
// query and the ordering is active. The pagination service uses this to
// decide whether the search bridge needs a candidate ID universe.
func (s FilterSpec) HasRelationalFilters() bool {
	return len(s.PlatformIDs) > 0 ||
		len(s.ParentPlatformIDs) > 0 ||
		len(s.StoreIDs) > 0 ||
		len(s.GenreIDs) > 0 ||
		len(s.CreatorIDs) > 0 ||
		len(s.DateRanges) > 0 ||
		s.Metacritic != nil ||
		s.ExcludeCollection != 0 ||
		s.ExcludeAdditions ||
		s.ExcludeParents ||
		s.ExcludeGameSeries ||
		len(s.ExcludeStores) > 0 ||
		len(s.IDs) > 0
}

// WithIDs returns a copy of the spec restricted to the given candidate IDs.
func (s FilterSpec) WithIDs(ids []int64) FilterSpec {
	s.IDs = append([]int64(nil), ids...)
	return s
}

// WithoutSearch returns a copy of the spec with the free-text query removed,
// leaving only the relational predicate.
func (s FilterSpec) WithoutSearch() FilterSpec {
	s.Search = ""
	return s
}

// WithOrdering returns a copy of the spec with the given ordering.
func (s FilterSpec) WithOrdering(o Ordering) FilterSpec {
	s.Order = o
	return s
}
