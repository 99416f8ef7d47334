// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package query

import "strings"

// Association subquery templates. The games table is always aliased "g"
// by the storage layer; the %s is replaced with the IN placeholder list.
const (
	existsPlatform = "EXISTS (SELECT 1 FROM game_platforms gp WHERE gp.game_id = g.id AND gp.platform_id IN (%s))"
	existsParent   = "EXISTS (SELECT 1 FROM game_platforms gp JOIN platforms p ON p.id = gp.platform_id WHERE gp.game_id = g.id AND p.parent_id IN (%s))"
	existsStore    = "EXISTS (SELECT 1 FROM game_stores gs WHERE gs.game_id = g.id AND gs.store_id IN (%s))"
	existsGenre    = "EXISTS (SELECT 1 FROM game_genres gg WHERE gg.game_id = g.id AND gg.genre_id IN (%s))"
	existsCreator  = "EXISTS (SELECT 1 FROM game_creators gc WHERE gc.game_id = g.id AND gc.creator_id IN (%s))"
	notExistsStore = "NOT EXISTS (SELECT 1 FROM game_stores gs WHERE gs.game_id = g.id AND gs.store_id IN (%s))"
)

// Where renders the relational predicate of the spec as a parameterized
// WHERE clause body over the games table (aliased "g"). The free-text
// query is not part of the relational predicate; it is handled by the
// search bridge.
//
// Returns "1=1" and no arguments for a spec with no active filters.
func (s FilterSpec) Where() (string, []interface{}) {
	wb := NewWhereBuilder()

	wb.AddExistsIn(existsPlatform, s.PlatformIDs)
	wb.AddExistsIn(existsParent, s.ParentPlatformIDs)
	wb.AddExistsIn(existsStore, s.StoreIDs)
	wb.AddExistsIn(existsGenre, s.GenreIDs)
	wb.AddExistsIn(existsCreator, s.CreatorIDs)

	if len(s.DateRanges) > 0 {
		ors := make([]string, len(s.DateRanges))
		args := make([]interface{}, 0, len(s.DateRanges)*2)
		for i, r := range s.DateRanges {
			ors[i] = "g.released BETWEEN ? AND ?"
			args = append(args, r.From, r.To)
		}
		wb.AddClause("("+strings.Join(ors, " OR ")+")", args...)
	}

	if s.Metacritic != nil {
		// metacritic = 0 means "absent" and never matches a range filter.
		wb.AddClause("g.metacritic <> 0 AND g.metacritic BETWEEN ? AND ?", s.Metacritic.Min, s.Metacritic.Max)
	}

	if s.ExcludeCollection != 0 {
		wb.AddClause("NOT EXISTS (SELECT 1 FROM collection_games cg WHERE cg.game_id = g.id AND cg.collection_id = ?)", s.ExcludeCollection)
	}
	if s.ExcludeAdditions {
		wb.AddClause("g.parent_id IS NULL")
	}
	if s.ExcludeParents {
		wb.AddClause("NOT EXISTS (SELECT 1 FROM games ch WHERE ch.parent_id = g.id)")
	}
	if s.ExcludeGameSeries {
		wb.AddClause("g.series_id IS NULL")
	}
	wb.AddExistsIn(notExistsStore, s.ExcludeStores)

	wb.AddIn("g.id", s.IDs)

	return wb.Build()
}
