// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package database

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/playdex/playdex/internal/config"
	"github.com/playdex/playdex/internal/models"
	"github.com/playdex/playdex/internal/query"
	"github.com/playdex/playdex/internal/rating"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{Path: ":memory:", Threads: 2})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// seedCatalog inserts a small catalog:
//
//	1 "Alpha Quest"  released 2015, metacritic 90, added 30, platform 4, genre 1
//	2 "Beta Racer"   released 2018, metacritic 70, added 20, platform 5, genre 2
//	3 "Alpha Quest DLC" (addition of 1), added 10, platform 4
//	4 "Gamma Saga"   series 77, no release date, added 40, store 3
func seedCatalog(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	games := []*models.Game{
		{ID: 1, Name: "Alpha Quest", Released: date(2015, 6, 1), Metacritic: 90, Added: 30},
		{ID: 2, Name: "Beta Racer", Released: date(2018, 3, 1), Metacritic: 70, Added: 20},
		{ID: 3, Name: "Alpha Quest DLC", Released: date(2016, 1, 1), ParentID: 1, Added: 10},
		{ID: 4, Name: "Gamma Saga", SeriesID: 77, Added: 40},
	}
	for _, g := range games {
		if err := db.InsertGame(ctx, g); err != nil {
			t.Fatalf("InsertGame(%d): %v", g.ID, err)
		}
	}

	links := []struct {
		fn  func(context.Context, int64, int64) error
		g   int64
		oth int64
	}{
		{db.LinkPlatform, 1, 4},
		{db.LinkPlatform, 2, 5},
		{db.LinkPlatform, 3, 4},
		{db.LinkGenre, 1, 1},
		{db.LinkGenre, 2, 2},
		{db.LinkStore, 4, 3},
	}
	for _, l := range links {
		if err := l.fn(ctx, l.g, l.oth); err != nil {
			t.Fatalf("link game %d: %v", l.g, err)
		}
	}
}

func TestSelectIDsDefaultOrdering(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	spec := query.FilterSpec{Order: query.DefaultOrdering()}
	ids, err := db.SelectIDs(context.Background(), spec, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}

	want := []int64{4, 1, 2, 3} // added DESC
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestSelectIDsPaginationAndCount(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	ctx := context.Background()

	spec := query.FilterSpec{Order: query.DefaultOrdering()}

	count, err := db.Count(ctx, spec)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 4 {
		t.Errorf("Count = %d, want 4", count)
	}

	page, err := db.SelectIDs(ctx, spec, 1, 2)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(page, []int64{1, 2}) {
		t.Errorf("page = %v, want [1 2]", page)
	}
}

func TestSelectIDsPlatformFilter(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	spec := query.FilterSpec{PlatformIDs: []int64{4}, Order: query.DefaultOrdering()}
	ids, err := db.SelectIDs(context.Background(), spec, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1, 3}) {
		t.Errorf("ids = %v, want [1 3]", ids)
	}
}

func TestSelectIDsMetacriticAbsentNeverMatches(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	// Games 3 and 4 have metacritic 0: "absent", outside any range.
	spec := query.FilterSpec{
		Metacritic: &query.IntRange{Min: 0, Max: 100},
		Order:      query.DefaultOrdering(),
	}
	ids, err := db.SelectIDs(context.Background(), spec, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", ids)
	}
}

func TestSelectIDsDateRanges(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	spec := query.FilterSpec{
		DateRanges: []query.DateRange{
			{From: date(2015, 1, 1), To: date(2015, 12, 31)},
			{From: date(2018, 1, 1), To: date(2018, 12, 31)},
		},
		Order: query.DefaultOrdering(),
	}
	ids, err := db.SelectIDs(context.Background(), spec, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", ids)
	}
}

func TestSelectIDsExclusions(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	ctx := context.Background()

	spec := query.FilterSpec{
		ExcludeAdditions:  true, // drops 3
		ExcludeParents:    true, // drops 1
		ExcludeGameSeries: true, // drops 4
		Order:             query.DefaultOrdering(),
	}
	ids, err := db.SelectIDs(ctx, spec, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{2}) {
		t.Errorf("ids = %v, want [2]", ids)
	}

	count, err := db.Count(ctx, spec)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

func TestSelectIDsExcludeCollection(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	ctx := context.Background()

	if err := db.AddToCollection(ctx, 50, 1); err != nil {
		t.Fatalf("AddToCollection: %v", err)
	}

	spec := query.FilterSpec{ExcludeCollection: 50, Order: query.DefaultOrdering()}
	ids, err := db.SelectIDs(ctx, spec, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{4, 2, 3}) {
		t.Errorf("ids = %v, want [4 2 3]", ids)
	}
}

func TestSelectIDsTieBrokenByIDDesc(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		if err := db.InsertGame(ctx, &models.Game{ID: id, Name: "Same", Added: 5}); err != nil {
			t.Fatalf("InsertGame: %v", err)
		}
	}

	ids, err := db.SelectIDs(ctx, query.FilterSpec{Order: query.DefaultOrdering()}, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{3, 2, 1}) {
		t.Errorf("equal sort keys must fall back to id DESC, got %v", ids)
	}
}

func TestSelectIDsPopularOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	games := []*models.Game{
		{ID: 1, Name: "Middling", WeightedRating: 3.2, Added: 99},
		{ID: 2, Name: "Beloved", WeightedRating: 4.6},
		{ID: 3, Name: "Sleeper", WeightedRating: 4.1},
	}
	for _, g := range games {
		if err := db.InsertGame(ctx, g); err != nil {
			t.Fatalf("InsertGame: %v", err)
		}
	}

	spec := query.FilterSpec{Order: query.PopularOrdering()}
	ids, err := db.SelectIDs(ctx, spec, 0, -1)
	if err != nil {
		t.Fatalf("SelectIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{2, 3, 1}) {
		t.Errorf("ids = %v, want [2 3 1] (weighted rating DESC)", ids)
	}
}

func TestUpdateRatingRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	ctx := context.Background()

	apply := func(h rating.Histogram) rating.Snapshot {
		h.Add(5)
		return rating.Snapshot{Histogram: h, Mean: h.Mean(), Top: h.Top(), Count: h.Total()}
	}

	for i := 0; i < 3; i++ {
		if _, err := db.UpdateRating(ctx, 1, apply); err != nil {
			t.Fatalf("UpdateRating: %v", err)
		}
	}

	snap, err := db.UpdateRating(ctx, 1, func(h rating.Histogram) rating.Snapshot {
		h.Add(3)
		return rating.Snapshot{Histogram: h, Mean: h.Mean(), Top: h.Top(), Count: h.Total()}
	})
	if err != nil {
		t.Fatalf("UpdateRating: %v", err)
	}

	if snap.Count != 4 {
		t.Errorf("Count = %d, want 4", snap.Count)
	}
	if snap.Top != 5 {
		t.Errorf("Top = %d, want 5", snap.Top)
	}

	g, err := db.GetGame(ctx, 1)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if g.RatingsCount != 4 || g.RatingTop != 5 {
		t.Errorf("persisted aggregate = count %d top %d", g.RatingsCount, g.RatingTop)
	}
}

func TestUpdateRatingUnknownGame(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.UpdateRating(context.Background(), 999, func(h rating.Histogram) rating.Snapshot {
		return rating.Snapshot{Histogram: h}
	})
	if err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestRecomputeWeightedRatings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	games := []*models.Game{
		{ID: 1, Name: "Well Rated", RatingMean: 4.5, RatingsCount: 100},
		{ID: 2, Name: "Barely Rated", RatingMean: 5.0, RatingsCount: 1},
		{ID: 3, Name: "Unrated"},
		{ID: 4, Name: "Panned", RatingMean: 2.0, RatingsCount: 50},
	}
	for _, g := range games {
		if err := db.InsertGame(ctx, g); err != nil {
			t.Fatalf("InsertGame: %v", err)
		}
	}

	if err := db.RecomputeWeightedRatings(ctx, 10); err != nil {
		t.Fatalf("RecomputeWeightedRatings: %v", err)
	}

	g1, err := db.GetGame(ctx, 1)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	g2, _ := db.GetGame(ctx, 2)
	g3, _ := db.GetGame(ctx, 3)

	// Many votes pull the estimate toward the raw mean; a single perfect
	// vote stays near the catalog prior and cannot outrank a well-rated
	// game.
	if g1.WeightedRating <= g2.WeightedRating {
		t.Errorf("well-rated game must outrank barely-rated: %v vs %v",
			g1.WeightedRating, g2.WeightedRating)
	}
	// The unrated game sits exactly at the catalog prior.
	prior := (4.5 + 5.0 + 2.0) / 3
	if diff := g3.WeightedRating - prior; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("unrated game weighted = %v, want prior %v", g3.WeightedRating, prior)
	}
}

func TestRecomputeAddedCounters(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	ctx := context.Background()

	for user := int64(1); user <= 3; user++ {
		if err := db.AddToLibrary(ctx, user, 2); err != nil {
			t.Fatalf("AddToLibrary: %v", err)
		}
	}

	if err := db.RecomputeAddedCounters(ctx); err != nil {
		t.Fatalf("RecomputeAddedCounters: %v", err)
	}

	g2, err := db.GetGame(ctx, 2)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	if g2.Added != 3 {
		t.Errorf("added = %d, want 3", g2.Added)
	}

	g1, _ := db.GetGame(ctx, 1)
	if g1.Added != 0 {
		t.Errorf("game without library rows: added = %d, want 0", g1.Added)
	}
}

func TestLibraryGameIDs(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	ctx := context.Background()

	for _, gid := range []int64{1, 4} {
		if err := db.AddToLibrary(ctx, 7, gid); err != nil {
			t.Fatalf("AddToLibrary: %v", err)
		}
	}

	ids, err := db.LibraryGameIDs(ctx, 7)
	if err != nil {
		t.Fatalf("LibraryGameIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("library size = %d, want 2", len(ids))
	}

	empty, err := db.LibraryGameIDs(ctx, 999)
	if err != nil {
		t.Fatalf("LibraryGameIDs: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown user library = %v", empty)
	}
}

func TestReferenceLists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.InsertPlatform(ctx, &models.Platform{ID: 4, Name: "PC"}); err != nil {
		t.Fatalf("InsertPlatform: %v", err)
	}
	if err := db.InsertPlatform(ctx, &models.Platform{ID: 5, Name: "Switch", ParentID: 2}); err != nil {
		t.Fatalf("InsertPlatform: %v", err)
	}
	if err := db.InsertGenre(ctx, &models.Genre{ID: 1, Name: "Action"}); err != nil {
		t.Fatalf("InsertGenre: %v", err)
	}
	if err := db.InsertStore(ctx, &models.Store{ID: 3, Name: "Steam"}); err != nil {
		t.Fatalf("InsertStore: %v", err)
	}

	platforms, err := db.ListPlatforms(ctx)
	if err != nil {
		t.Fatalf("ListPlatforms: %v", err)
	}
	if len(platforms) != 2 || platforms[0].Name != "PC" {
		t.Errorf("platforms = %+v", platforms)
	}
	if platforms[1].ParentID != 2 {
		t.Errorf("parent_id = %d, want 2", platforms[1].ParentID)
	}

	genres, err := db.ListGenres(ctx)
	if err != nil {
		t.Fatalf("ListGenres: %v", err)
	}
	if len(genres) != 1 {
		t.Errorf("genres = %+v", genres)
	}

	stores, err := db.ListStores(ctx)
	if err != nil {
		t.Fatalf("ListStores: %v", err)
	}
	if len(stores) != 1 {
		t.Errorf("stores = %+v", stores)
	}
}

func TestSearchIndexScoring(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	idx := NewSearchIndex(db)
	ctx := context.Background()

	hits, err := idx.Query(ctx, "alpha quest", nil, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	// Exact match outscores the substring match.
	if hits[0].ID != 1 {
		t.Errorf("top hit = %d, want 1", hits[0].ID)
	}

	restricted, err := idx.Query(ctx, "alpha", []int64{3}, 10)
	if err != nil {
		t.Fatalf("restricted Query: %v", err)
	}
	if len(restricted) != 1 || restricted[0].ID != 3 {
		t.Errorf("restricted hits = %+v, want only game 3", restricted)
	}

	none, err := idx.Query(ctx, "zzz", nil, 10)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("no-match query returned %d hits", len(none))
	}
}
