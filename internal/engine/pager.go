// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/playdex/playdex/internal/logging"
	"github.com/playdex/playdex/internal/metrics"
	"github.com/playdex/playdex/internal/query"
	"github.com/playdex/playdex/internal/ranking"
	"github.com/playdex/playdex/internal/search"
)

// Execution path labels for metrics and logging.
const (
	pathScan     = "scan"
	pathSearch   = "search"
	pathComposed = "composed"
)

// Searcher is the search bridge as the pager sees it.
type Searcher interface {
	Search(ctx context.Context, text string, candidates []int64) ([]search.Hit, error)
}

// Pager computes pages of game IDs. The count is always derived from the
// filter predicate alone, independent of how the ordering was produced,
// so chunked search or pin merging can never skew it.
//
// Paging errors never occur for out-of-range cursors: a too-large offset
// yields an empty page with the correct count, and negative offset/limit
// values are clamped.
type Pager struct {
	store        Store
	bridge       Searcher
	defaultLimit int
	maxLimit     int
}

// NewPager creates a Pager. Non-positive page-size settings select the
// defaults (20, capped at 100).
func NewPager(store Store, bridge Searcher, defaultLimit, maxLimit int) *Pager {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &Pager{store: store, bridge: bridge, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Page returns one page for the spec. A free-text query routes through the
// search-merged path; otherwise a direct relational scan is used.
func (p *Pager) Page(ctx context.Context, spec query.FilterSpec, offset, limit int) (RankedPage, error) {
	offset, limit = p.clamp(offset, limit)

	path := pathScan
	if spec.HasSearch() {
		path = pathSearch
	}
	done := p.observe(path, spec)
	defer done()

	if spec.HasSearch() {
		return p.searchPage(ctx, spec, offset, limit)
	}
	return p.scanPage(ctx, spec, offset, limit)
}

// PageCurated returns one page of a curated list: the organically ordered
// base for the spec merged with the pinned entries.
func (p *Pager) PageCurated(ctx context.Context, spec query.FilterSpec, pins ranking.PinSet, mode ranking.Mode, offset, limit int) (RankedPage, error) {
	offset, limit = p.clamp(offset, limit)

	done := p.observe(pathComposed, spec)
	defer done()

	base, err := p.store.SelectIDs(ctx, spec, 0, -1)
	if err != nil {
		return RankedPage{}, fmt.Errorf("curated base list: %w", err)
	}

	composed := ranking.Compose(base, pins, mode)
	return slicePage(composed, offset, limit), nil
}

// scanPage is the direct relational path: ordering and slicing happen in
// SQL, the count shares the same predicate.
func (p *Pager) scanPage(ctx context.Context, spec query.FilterSpec, offset, limit int) (RankedPage, error) {
	count, err := p.store.Count(ctx, spec)
	if err != nil {
		return RankedPage{}, fmt.Errorf("count: %w", err)
	}
	if offset >= count {
		return RankedPage{IDs: nil, Count: count, Offset: offset, Limit: limit}, nil
	}

	ids, err := p.store.SelectIDs(ctx, spec, offset, limit)
	if err != nil {
		return RankedPage{}, fmt.Errorf("select page: %w", err)
	}
	return RankedPage{IDs: ids, Count: count, Offset: offset, Limit: limit}, nil
}

// searchPage merges full-text relevance with the relational predicate.
// When other filters narrowed the universe to a known ID set, that set is
// resolved first and handed to the bridge for chunked querying. The hits
// already reflect predicate AND query, so their cardinality is the exact
// count regardless of chunking.
func (p *Pager) searchPage(ctx context.Context, spec query.FilterSpec, offset, limit int) (RankedPage, error) {
	rel := spec.WithoutSearch()

	var candidates []int64
	if rel.HasRelationalFilters() {
		var err error
		candidates, err = p.store.SelectIDs(ctx, rel, 0, -1)
		if err != nil {
			return RankedPage{}, fmt.Errorf("search candidates: %w", err)
		}
		if len(candidates) == 0 {
			return RankedPage{IDs: nil, Count: 0, Offset: offset, Limit: limit}, nil
		}
	}

	hits, err := p.bridge.Search(ctx, spec.Search, candidates)
	if err != nil {
		return RankedPage{}, err
	}
	hits = dedupeHits(hits)
	count := len(hits)

	// An explicitly requested attribute ordering overrides relevance:
	// the relational layer re-orders the hit set post-filter. Scores
	// only decide the default case.
	if spec.Order.Explicit {
		ids := make([]int64, len(hits))
		for i, h := range hits {
			ids[i] = h.ID
		}
		if offset >= count {
			return RankedPage{IDs: nil, Count: count, Offset: offset, Limit: limit}, nil
		}
		pageIDs, err := p.store.SelectIDs(ctx, rel.WithIDs(ids), offset, limit)
		if err != nil {
			return RankedPage{}, fmt.Errorf("reorder search hits: %w", err)
		}
		return RankedPage{IDs: pageIDs, Count: count, Offset: offset, Limit: limit}, nil
	}

	search.SortHits(hits)
	ids := make([]int64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return slicePage(ids, offset, limit), nil
}

// clamp normalizes the paging cursor: negative offsets become 0 and a
// missing or negative limit selects the default page size, capped at the
// maximum. Invalid paging is never an error.
func (p *Pager) clamp(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = p.defaultLimit
	}
	if limit > p.maxLimit {
		limit = p.maxLimit
	}
	return offset, limit
}

// observe logs the request with a correlation ID and times the path.
func (p *Pager) observe(path string, spec query.FilterSpec) func() {
	queryID := uuid.NewString()
	start := time.Now()
	metrics.PageRequests.WithLabelValues(path).Inc()
	logging.Debug().
		Str("query_id", queryID).
		Str("path", path).
		Str("ordering", spec.Order.Field).
		Bool("search", spec.HasSearch()).
		Msg("Page computation started")
	return func() {
		elapsed := time.Since(start)
		metrics.PageDuration.WithLabelValues(path).Observe(elapsed.Seconds())
		logging.Debug().Str("query_id", queryID).Dur("elapsed", elapsed).Msg("Page computation finished")
	}
}

// slicePage cuts [offset, offset+limit) out of the full ordering; the
// count is the full cardinality.
func slicePage(ids []int64, offset, limit int) RankedPage {
	count := len(ids)
	if offset >= count {
		return RankedPage{IDs: nil, Count: count, Offset: offset, Limit: limit}
	}
	end := offset + limit
	if end > count {
		end = count
	}
	page := append([]int64(nil), ids[offset:end]...)
	return RankedPage{IDs: page, Count: count, Offset: offset, Limit: limit}
}

// dedupeHits removes repeated IDs, keeping the first (highest-ranked)
// occurrence. Chunks never overlap; only the index itself can repeat an ID.
func dedupeHits(hits []search.Hit) []search.Hit {
	seen := make(map[int64]struct{}, len(hits))
	out := hits[:0]
	for _, h := range hits {
		if _, dup := seen[h.ID]; dup {
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h)
	}
	return out
}
