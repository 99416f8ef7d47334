// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package query

import "strings"

// Ordering is a validated sort directive. Explicit records whether the
// client actually requested this ordering or whether it is the fallback;
// the search-merged path keeps relevance order only when the ordering is
// not explicit.
type Ordering struct {
	Field    string
	Desc     bool
	Explicit bool
}

// sortableFields is the allow-list of client-sortable fields mapped to
// their SQL columns. Anything else falls back to the default ordering.
var sortableFields = map[string]string{
	"name":       "g.name",
	"released":   "g.released",
	"added":      "g.added",
	"created":    "g.created",
	"updated":    "g.updated",
	"rating":     "g.rating_mean",
	"metacritic": "g.metacritic",
	"popular":    "g.weighted_rating",
}

// DefaultOrdering sorts by the popularity counter, most-added first.
func DefaultOrdering() Ordering {
	return Ordering{Field: "added", Desc: true}
}

// PopularOrdering sorts by the Bayesian weighted rating, best first. It
// backs the curated "popular" lists and is refreshed by the background
// recompute job.
func PopularOrdering() Ordering {
	return Ordering{Field: "popular", Desc: true}
}

// ParseOrdering validates a raw ordering parameter ("released",
// "-released", ...) against the allow-list. Unrecognized values fall back
// to the default ordering silently.
func ParseOrdering(raw string) Ordering {
	raw = strings.TrimSpace(raw)
	desc := false
	if strings.HasPrefix(raw, "-") {
		desc = true
		raw = raw[1:]
	}
	if _, ok := sortableFields[raw]; !ok {
		return DefaultOrdering()
	}
	return Ordering{Field: raw, Desc: desc, Explicit: true}
}

// Column returns the SQL column backing the ordering field.
func (o Ordering) Column() string {
	if col, ok := sortableFields[o.Field]; ok {
		return col
	}
	return sortableFields[DefaultOrdering().Field]
}

// Clause returns the full ORDER BY expression including the deterministic
// secondary key. Ordering fields are not guaranteed unique, so "g.id DESC"
// is always appended to make page boundaries stable.
func (o Ordering) Clause() string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	if o.Column() == "g.id" {
		return "g.id " + dir
	}
	return o.Column() + " " + dir + ", g.id DESC"
}
