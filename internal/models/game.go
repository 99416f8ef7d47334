// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package models defines the catalog domain types shared across the engine.
package models

import "time"

// SentinelReleaseDate marks a game whose release date is unknown.
// The storage layer persists this value instead of NULL so that date
// comparisons stay total; filters treat it as "unset".
var SentinelReleaseDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Game is a catalog entity. The engine reads its attributes and owns only
// the rating aggregate fields (RatingMean, RatingTop, RatingsCount,
// WeightedRating) plus the Added popularity counter; everything else is
// written by ingestion, which is out of scope here.
type Game struct {
	ID         int64
	Name       string
	Slug       string
	Released   time.Time // SentinelReleaseDate when unknown
	TBA        bool
	Metacritic int // 0 means "absent"

	// Popularity and rating aggregates, maintained by the engine.
	Added          int
	RatingMean     float64
	RatingTop      int
	RatingsCount   int
	WeightedRating float64

	// ParentID is set when the game is an addition (DLC, expansion) of
	// another game; SeriesID groups games into a series. Zero means none.
	ParentID int64
	SeriesID int64

	Created time.Time
	Updated time.Time
}

// HasReleaseDate reports whether the release date is known.
func (g *Game) HasReleaseDate() bool {
	return !g.Released.Equal(SentinelReleaseDate) && !g.Released.IsZero()
}

// Platform is a reference-list entry (e.g. "PlayStation 5").
// ParentID links console generations to their family ("PlayStation").
type Platform struct {
	ID       int64
	Name     string
	ParentID int64
}

// Genre is a reference-list entry (e.g. "Action").
type Genre struct {
	ID   int64
	Name string
}

// Store is a reference-list entry (e.g. "Steam").
type Store struct {
	ID   int64
	Name string
}
