// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package popularity runs the periodic recompute of the added counters
// and the Bayesian weighted ratings, so the popularity and rating
// orderings stay fresh without touching the vote path.
package popularity

import (
	"context"
	"time"

	"github.com/playdex/playdex/internal/logging"
	"github.com/playdex/playdex/internal/metrics"
)

// Recomputer is the storage surface the job drives.
type Recomputer interface {
	RecomputeAddedCounters(ctx context.Context) error
	RecomputeWeightedRatings(ctx context.Context, minVotes int) error
}

// Job periodically refreshes the derived popularity fields. It implements
// suture.Service and runs once immediately, then on every tick.
type Job struct {
	store    Recomputer
	interval time.Duration
	minVotes int
}

// NewJob creates the job. interval <= 0 defaults to one hour, minVotes <= 0
// to ten.
func NewJob(store Recomputer, interval time.Duration, minVotes int) *Job {
	if interval <= 0 {
		interval = time.Hour
	}
	if minVotes <= 0 {
		minVotes = 10
	}
	return &Job{store: store, interval: interval, minVotes: minVotes}
}

// Serve runs the recompute loop until the context is canceled.
func (j *Job) Serve(ctx context.Context) error {
	j.run(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.run(ctx)
		}
	}
}

// run performs one recompute pass. Errors are logged and counted, not
// returned; the next tick retries.
func (j *Job) run(ctx context.Context) {
	start := time.Now()

	err := j.store.RecomputeAddedCounters(ctx)
	if err == nil {
		err = j.store.RecomputeWeightedRatings(ctx, j.minVotes)
	}

	elapsed := time.Since(start)
	metrics.PopularityDuration.Observe(elapsed.Seconds())

	if err != nil {
		metrics.PopularityRuns.WithLabelValues("failure").Inc()
		logging.Error().Err(err).Dur("elapsed", elapsed).Msg("Popularity recompute failed")
		return
	}
	metrics.PopularityRuns.WithLabelValues("success").Inc()
	logging.Debug().Dur("elapsed", elapsed).Msg("Popularity recompute completed")
}

// String names the service in supervisor logs.
func (j *Job) String() string {
	return "popularity-recompute"
}
