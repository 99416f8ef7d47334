// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/playdex/playdex/internal/logging"
)

// RecomputeWeightedRatings refreshes weighted_rating for every game using
// the Bayesian estimate
//
//	(v/(v+m))*R + (m/(v+m))*C
//
// where v is the game's vote count, R its raw mean, m the minimum-votes
// prior weight and C the catalog-wide mean over rated games. Games with no
// votes score m/(v+m)*C = C, so they rank at the prior rather than at zero.
func (db *DB) RecomputeWeightedRatings(ctx context.Context, minVotes int) error {
	start := time.Now()

	var globalMean float64
	err := db.conn.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(rating_mean), 0) FROM games WHERE ratings_count > 0").Scan(&globalMean)
	if err != nil {
		observe("recompute_weighted", start, err)
		return fmt.Errorf("compute global rating mean: %w", err)
	}

	res, err := db.conn.ExecContext(ctx, `
		UPDATE games
		SET weighted_rating =
			(CAST(ratings_count AS DOUBLE) / (ratings_count + ?)) * rating_mean
			+ (CAST(? AS DOUBLE) / (ratings_count + ?)) * ?`,
		minVotes, minVotes, minVotes, globalMean)
	observe("recompute_weighted", start, err)
	if err != nil {
		return fmt.Errorf("recompute weighted ratings: %w", err)
	}

	rows, _ := res.RowsAffected()
	logging.Debug().
		Int64("games", rows).
		Float64("global_mean", globalMean).
		Int("min_votes", minVotes).
		Msg("Weighted ratings recomputed")
	return nil
}

// RecomputeAddedCounters refreshes each game's added counter from the
// library rows, so the default popularity ordering reflects reality even
// after out-of-band library changes.
func (db *DB) RecomputeAddedCounters(ctx context.Context) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		UPDATE games
		SET added = (SELECT COUNT(*) FROM library_games lg WHERE lg.game_id = games.id)`)
	observe("recompute_added", start, err)
	if err != nil {
		return fmt.Errorf("recompute added counters: %w", err)
	}
	return nil
}
