// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package search bridges the engine to the external full-text index. The
// index is a black box queried by relevance; this package only scopes the
// query, chunks large candidate sets and guards the outbound calls.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/playdex/playdex/internal/metrics"
)

// Hit is one search result: an entity ID and its relevance score.
// Hits live for one query and are never persisted.
type Hit struct {
	ID    int64
	Score float64
}

// Index is the external full-text search collaborator. A non-nil restrict
// slice limits matching to those IDs; limit caps the number of hits.
// Results come back in the index's own relevance order.
type Index interface {
	Query(ctx context.Context, text string, restrict []int64, limit int) ([]Hit, error)
}

// Config tunes the bridge. ChunkSize is a latency/width trade-off, not a
// correctness constraint: the index tolerates bounded-size ID restriction
// sets, so large candidate universes are split.
type Config struct {
	ChunkSize     int
	MaxResults    int
	MaxConcurrent int
	RatePerSecond float64
	RateBurst     int
	Timeout       time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:     5000,
		MaxResults:    10000,
		MaxConcurrent: 4,
		RatePerSecond: 0, // 0 disables rate limiting
		RateBurst:     1,
		Timeout:       10 * time.Second,
	}
}

// Bridge issues relevance queries against the search index, splitting a
// known candidate ID universe into fixed-size chunks. Per-chunk relevance
// order is preserved and chunks are concatenated in chunk order; callers
// needing one global relevance order re-sort by score (SortHits).
//
// An unavailable index is fatal for the call: there is no local fallback
// ranking. Outbound calls go through a circuit breaker and an optional
// rate limiter.
type Bridge struct {
	index   Index
	breaker *breaker
	limiter *rate.Limiter
	cfg     Config
}

// NewBridge creates a Bridge around the given index.
func NewBridge(index Index, cfg Config) *Bridge {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultConfig().MaxResults
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultConfig().MaxConcurrent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return &Bridge{
		index:   index,
		breaker: newBreaker("search-index"),
		limiter: limiter,
		cfg:     cfg,
	}
}

// Search runs the free-text query. With candidates, the universe is split
// into chunks queried independently; chunk queries run concurrently and
// the results are concatenated deterministically by chunk index. Without
// candidates a single unrestricted query is issued.
//
// Each invocation is a fresh query; nothing is cached across calls or
// cancellations.
func (b *Bridge) Search(ctx context.Context, text string, candidates []int64) ([]Hit, error) {
	if text == "" {
		return nil, nil
	}

	if len(candidates) == 0 {
		return b.query(ctx, text, nil, b.cfg.MaxResults)
	}

	chunks := chunkIDs(candidates, b.cfg.ChunkSize)
	results := make([][]Hit, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.MaxConcurrent)
	for i, chunk := range chunks {
		g.Go(func() error {
			hits, err := b.query(gctx, text, chunk, len(chunk))
			if err != nil {
				return err
			}
			results[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Hit
	for _, hits := range results {
		merged = append(merged, hits...)
	}
	return merged, nil
}

// query issues one index call, guarded by the rate limiter, the per-call
// timeout and the circuit breaker.
func (b *Bridge) query(ctx context.Context, text string, restrict []int64, limit int) ([]Hit, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("search rate limit wait: %w", err)
		}
	}

	qctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	start := time.Now()
	metrics.SearchChunkQueries.Inc()

	hits, err := b.breaker.execute(func() ([]Hit, error) {
		return b.index.Query(qctx, text, restrict, limit)
	})
	metrics.SearchQueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("search index query: %w", err)
	}
	return hits, nil
}

// SortHits orders hits by score descending, breaking ties by ID
// descending so repeated queries return identical orderings.
func SortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID > hits[j].ID
	})
}

// chunkIDs splits ids into slices of at most size entries, preserving
// order. The final chunk holds the remainder.
func chunkIDs(ids []int64, size int) [][]int64 {
	var chunks [][]int64
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
