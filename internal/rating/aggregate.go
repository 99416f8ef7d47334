// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package rating

import (
	"context"
	"fmt"

	"github.com/playdex/playdex/internal/metrics"
)

// Snapshot is the state persisted after a vote: the updated histogram and
// the aggregates derived from it. Mean is the raw (unsuppressed) mean.
type Snapshot struct {
	Histogram Histogram
	Mean      float64
	Top       int
	Count     int
}

// Store persists the rating aggregate. UpdateRating must load the current
// histogram, apply the update function and persist the returned snapshot
// within a single transaction, so a storage failure leaves the previous
// state intact.
type Store interface {
	UpdateRating(ctx context.Context, entityID int64, apply func(Histogram) Snapshot) (Snapshot, error)
}

// Aggregate applies votes to game rating histograms.
//
// Concurrency: the underlying transaction alone does not prevent lost
// updates, because two transactions can read the same histogram before
// either writes. Aggregate therefore holds a per-entity lock across the
// whole read-modify-write; all writers for one game observe a strict
// happens-before order.
type Aggregate struct {
	store     Store
	threshold int
	locks     entityLocks
}

// NewAggregate creates an Aggregate. threshold <= 0 selects
// DefaultMeanThreshold.
func NewAggregate(store Store, threshold int) *Aggregate {
	if threshold <= 0 {
		threshold = DefaultMeanThreshold
	}
	return &Aggregate{store: store, threshold: threshold}
}

// ApplyVote records (or, with removal, retracts) one vote of the given
// value and returns the new reported mean and top rating. The rating value
// is assumed pre-validated upstream; storage failures propagate unchanged.
func (a *Aggregate) ApplyVote(ctx context.Context, entityID int64, value int, removal bool) (float64, int, error) {
	unlock := a.locks.lock(entityID)
	defer unlock()

	op := "add"
	if removal {
		op = "remove"
	}

	snap, err := a.store.UpdateRating(ctx, entityID, func(h Histogram) Snapshot {
		if removal {
			h.Remove(value)
		} else {
			h.Add(value)
		}
		return Snapshot{
			Histogram: h,
			Mean:      h.Mean(),
			Top:       h.Top(),
			Count:     h.Total(),
		}
	})
	if err != nil {
		metrics.RatingUpdateErrors.WithLabelValues(op).Inc()
		return 0, 0, fmt.Errorf("apply vote for game %d: %w", entityID, err)
	}

	metrics.RatingUpdates.WithLabelValues(op).Inc()

	reported := snap.Mean
	if snap.Count < a.threshold {
		reported = 0
	}
	return reported, snap.Top, nil
}
