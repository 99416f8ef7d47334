// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package engine

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/playdex/playdex/internal/query"
	"github.com/playdex/playdex/internal/ranking"
	"github.com/playdex/playdex/internal/search"
)

// fakeStore serves a fixed ordered ID universe. The relational predicate
// is reduced to the spec's ID restriction, which is all the pager relies
// on for routing. The popular ordering re-sorts by the weights map the
// way the real store sorts by weighted_rating.
type fakeStore struct {
	universe []int64
	weights  map[int64]float64
	fail     error
}

func (f *fakeStore) matches(spec query.FilterSpec) []int64 {
	out := append([]int64(nil), f.universe...)
	if len(spec.IDs) > 0 {
		allowed := make(map[int64]struct{}, len(spec.IDs))
		for _, id := range spec.IDs {
			allowed[id] = struct{}{}
		}
		filtered := out[:0]
		for _, id := range out {
			if _, ok := allowed[id]; ok {
				filtered = append(filtered, id)
			}
		}
		out = filtered
	}
	if spec.Order.Field == "popular" {
		sort.SliceStable(out, func(i, j int) bool {
			wi, wj := f.weights[out[i]], f.weights[out[j]]
			if wi != wj {
				return wi > wj
			}
			return out[i] > out[j]
		})
	}
	return out
}

func (f *fakeStore) SelectIDs(_ context.Context, spec query.FilterSpec, offset, limit int) ([]int64, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	ids := f.matches(spec)
	if limit < 0 {
		return ids, nil
	}
	if offset >= len(ids) {
		return nil, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end], nil
}

func (f *fakeStore) Count(_ context.Context, spec query.FilterSpec) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	return len(f.matches(spec)), nil
}

// fakeSearcher scores hits by ID so relevance order is descending ID.
type fakeSearcher struct {
	candidates []int64
	fail       error
}

func (f *fakeSearcher) Search(_ context.Context, text string, candidates []int64) ([]search.Hit, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.candidates = append([]int64(nil), candidates...)

	src := candidates
	if len(src) == 0 {
		src = []int64{3, 1, 4, 1, 5} // unrestricted index result, with a dup
	}
	hits := make([]search.Hit, 0, len(src))
	for _, id := range src {
		hits = append(hits, search.Hit{ID: id, Score: float64(id)})
	}
	return hits, nil
}

func universe(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(n - i) // descending, like "added DESC"
	}
	return ids
}

func TestScanPath(t *testing.T) {
	store := &fakeStore{universe: universe(50)}
	p := NewPager(store, &fakeSearcher{}, 20, 100)

	page, err := p.Page(context.Background(), query.FilterSpec{}, 0, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Count != 50 {
		t.Errorf("Count = %d, want 50", page.Count)
	}
	if len(page.IDs) != 10 {
		t.Errorf("page size = %d, want 10", len(page.IDs))
	}
	if page.IDs[0] != 50 {
		t.Errorf("first ID = %d, want 50", page.IDs[0])
	}
	if !page.HasNext() {
		t.Error("expected a next page")
	}
	if page.NextOffset() != 10 {
		t.Errorf("NextOffset = %d, want 10", page.NextOffset())
	}
}

func TestScanPathOffsetBeyondCount(t *testing.T) {
	store := &fakeStore{universe: universe(5)}
	p := NewPager(store, &fakeSearcher{}, 20, 100)

	page, err := p.Page(context.Background(), query.FilterSpec{}, 1000, 10)
	if err != nil {
		t.Fatalf("out-of-range offset must not error: %v", err)
	}
	if len(page.IDs) != 0 {
		t.Errorf("expected empty page, got %d IDs", len(page.IDs))
	}
	if page.Count != 5 {
		t.Errorf("Count = %d, want 5", page.Count)
	}
	if page.HasNext() {
		t.Error("empty tail page must not report a next page")
	}
}

func TestPageClamping(t *testing.T) {
	store := &fakeStore{universe: universe(500)}
	p := NewPager(store, &fakeSearcher{}, 20, 100)

	page, err := p.Page(context.Background(), query.FilterSpec{}, -5, 0)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Offset != 0 {
		t.Errorf("negative offset must clamp to 0, got %d", page.Offset)
	}
	if len(page.IDs) != 20 {
		t.Errorf("zero limit must select the default, got %d IDs", len(page.IDs))
	}

	page, err = p.Page(context.Background(), query.FilterSpec{}, 0, 10000)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(page.IDs) != 100 {
		t.Errorf("limit must cap at the maximum, got %d IDs", len(page.IDs))
	}
}

func TestSearchPathUnfiltered(t *testing.T) {
	store := &fakeStore{universe: universe(10)}
	searcher := &fakeSearcher{}
	p := NewPager(store, searcher, 20, 100)

	spec := query.FilterSpec{Search: "zelda", Order: query.DefaultOrdering()}
	page, err := p.Page(context.Background(), spec, 0, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	if len(searcher.candidates) != 0 {
		t.Error("no relational filters: the bridge must get no candidate set")
	}
	// 5 raw hits with one duplicate: count reflects the deduplicated set.
	if page.Count != 4 {
		t.Errorf("Count = %d, want 4", page.Count)
	}
	want := []int64{5, 4, 3, 1} // relevance order, score = ID
	if !reflect.DeepEqual(page.IDs, want) {
		t.Errorf("IDs = %v, want %v", page.IDs, want)
	}
}

func TestSearchPathWithRelationalFilters(t *testing.T) {
	store := &fakeStore{universe: universe(10)}
	searcher := &fakeSearcher{}
	p := NewPager(store, searcher, 20, 100)

	spec := query.FilterSpec{
		Search:      "zelda",
		PlatformIDs: []int64{4},
		Order:       query.DefaultOrdering(),
	}
	page, err := p.Page(context.Background(), spec, 0, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	// The relational universe resolves first and scopes the bridge.
	if len(searcher.candidates) != 10 {
		t.Errorf("bridge candidates = %d, want the filtered universe (10)", len(searcher.candidates))
	}
	if page.Count != 10 {
		t.Errorf("Count = %d, want 10", page.Count)
	}
}

func TestSearchPathExplicitOrderingOverridesRelevance(t *testing.T) {
	store := &fakeStore{universe: universe(10)}
	p := NewPager(store, &fakeSearcher{}, 20, 100)

	spec := query.FilterSpec{
		Search: "zelda",
		Order:  query.ParseOrdering("-released"),
	}
	page, err := p.Page(context.Background(), spec, 0, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	// With an explicit ordering the store re-orders the hit set; the fake
	// store returns universe order, which differs from relevance order
	// only in the presence of all hit IDs.
	sorted := append([]int64(nil), page.IDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	if !reflect.DeepEqual(page.IDs, sorted) {
		t.Errorf("explicit ordering must follow store order, got %v", page.IDs)
	}
	if page.Count != 4 {
		t.Errorf("Count = %d, want 4", page.Count)
	}
}

func TestSearchPathEmptyCandidates(t *testing.T) {
	store := &fakeStore{universe: nil}
	searcher := &fakeSearcher{}
	p := NewPager(store, searcher, 20, 100)

	spec := query.FilterSpec{
		Search:   "zelda",
		GenreIDs: []int64{1},
		Order:    query.DefaultOrdering(),
	}
	page, err := p.Page(context.Background(), spec, 0, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Count != 0 || len(page.IDs) != 0 {
		t.Errorf("empty candidate set: got count %d, %d IDs", page.Count, len(page.IDs))
	}
	if searcher.candidates != nil {
		t.Error("empty candidate set must short-circuit before the bridge")
	}
}

func TestSearchPathBridgeFailure(t *testing.T) {
	store := &fakeStore{universe: universe(10)}
	p := NewPager(store, &fakeSearcher{fail: errors.New("index down")}, 20, 100)

	spec := query.FilterSpec{Search: "zelda", Order: query.DefaultOrdering()}
	if _, err := p.Page(context.Background(), spec, 0, 10); err == nil {
		t.Error("bridge failure must fail the page")
	}
}

func TestCuratedPath(t *testing.T) {
	store := &fakeStore{universe: universe(6)} // 6 5 4 3 2 1
	p := NewPager(store, &fakeSearcher{}, 20, 100)

	pins := ranking.PinSet{IDs: []int64{2, 9}}
	page, err := p.PageCurated(context.Background(), query.FilterSpec{}, pins, ranking.Stable, 0, 4)
	if err != nil {
		t.Fatalf("PageCurated: %v", err)
	}

	want := []int64{2, 9, 6, 5}
	if !reflect.DeepEqual(page.IDs, want) {
		t.Errorf("IDs = %v, want %v", page.IDs, want)
	}
	// The composed length is the count: 2 pins + 5 unpinned base IDs.
	if page.Count != 7 {
		t.Errorf("Count = %d, want 7", page.Count)
	}
}

func TestCuratedPopularPage(t *testing.T) {
	store := &fakeStore{
		universe: universe(4), // 4 3 2 1
		weights:  map[int64]float64{1: 4.8, 2: 3.1, 3: 4.2, 4: 2.0},
	}
	p := NewPager(store, &fakeSearcher{}, 20, 100)

	spec := query.FilterSpec{Order: query.PopularOrdering()}
	pins := ranking.PinSet{IDs: []int64{2}}
	page, err := p.PageCurated(context.Background(), spec, pins, ranking.Stable, 0, 10)
	if err != nil {
		t.Fatalf("PageCurated: %v", err)
	}

	// Pin first, then the organic base by weighted rating descending.
	want := []int64{2, 1, 3, 4}
	if !reflect.DeepEqual(page.IDs, want) {
		t.Errorf("IDs = %v, want %v", page.IDs, want)
	}
}

// walkPages concatenates all pages for one paging function until the last
// page, checking that the count never drifts.
func walkPages(t *testing.T, wantCount int, pageFn func(offset int) (RankedPage, error)) []int64 {
	t.Helper()
	var collected []int64
	offset := 0
	for {
		page, err := pageFn(offset)
		if err != nil {
			t.Fatalf("page at offset %d: %v", offset, err)
		}
		if page.Count != wantCount {
			t.Errorf("Count at offset %d = %d, want %d", offset, page.Count, wantCount)
		}
		collected = append(collected, page.IDs...)
		if !page.HasNext() {
			break
		}
		offset = page.NextOffset()
	}
	seen := make(map[int64]struct{}, len(collected))
	for _, id := range collected {
		if _, dup := seen[id]; dup {
			t.Fatalf("ID %d appeared on two pages", id)
		}
		seen[id] = struct{}{}
	}
	return collected
}

func TestCountConsistentAcrossPagesScan(t *testing.T) {
	store := &fakeStore{universe: universe(37)}
	p := NewPager(store, &fakeSearcher{}, 20, 100)
	ctx := context.Background()

	collected := walkPages(t, 37, func(offset int) (RankedPage, error) {
		return p.Page(ctx, query.FilterSpec{}, offset, 10)
	})
	if len(collected) != 37 {
		t.Fatalf("walked %d IDs, want 37", len(collected))
	}
}

func TestCountConsistentAcrossPagesSearch(t *testing.T) {
	store := &fakeStore{universe: universe(37)}
	p := NewPager(store, &fakeSearcher{}, 20, 100)
	ctx := context.Background()

	// The relational filter resolves all 37 candidates; the fake bridge
	// scores each of them, so the hit set is the full universe.
	spec := query.FilterSpec{
		Search:      "zelda",
		PlatformIDs: []int64{4},
		Order:       query.DefaultOrdering(),
	}
	collected := walkPages(t, 37, func(offset int) (RankedPage, error) {
		return p.Page(ctx, spec, offset, 10)
	})
	if len(collected) != 37 {
		t.Fatalf("walked %d IDs, want 37", len(collected))
	}
}

func TestCountConsistentAcrossPagesCurated(t *testing.T) {
	store := &fakeStore{universe: universe(35)}
	p := NewPager(store, &fakeSearcher{}, 20, 100)
	ctx := context.Background()

	// 35 base IDs plus two pins outside the base: composed count 37.
	pins := ranking.PinSet{IDs: []int64{100, 200}}
	collected := walkPages(t, 37, func(offset int) (RankedPage, error) {
		return p.PageCurated(ctx, query.FilterSpec{}, pins, ranking.Stable, offset, 10)
	})
	if len(collected) != 37 {
		t.Fatalf("walked %d IDs, want 37", len(collected))
	}
	if collected[0] != 100 || collected[1] != 200 {
		t.Errorf("pins must lead the walk, got %v", collected[:2])
	}
}

func TestScanPathStoreFailure(t *testing.T) {
	store := &fakeStore{universe: universe(5), fail: errors.New("db gone")}
	p := NewPager(store, &fakeSearcher{}, 20, 100)

	if _, err := p.Page(context.Background(), query.FilterSpec{}, 0, 10); err == nil {
		t.Error("store failure must propagate")
	}
}
