// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/playdex/playdex/internal/logging"
	"github.com/playdex/playdex/internal/rating"
)

// UpdateRating loads the game's rating histogram, applies the update
// function and persists the returned snapshot, all within one
// transaction. A failure at any point rolls back to the previous state.
func (db *DB) UpdateRating(ctx context.Context, entityID int64, apply func(rating.Histogram) rating.Snapshot) (rating.Snapshot, error) {
	start := time.Now()
	snap, err := db.updateRatingTx(ctx, entityID, apply)
	observe("update_rating", start, err)
	return snap, err
}

func (db *DB) updateRatingTx(ctx context.Context, entityID int64, apply func(rating.Histogram) rating.Snapshot) (rating.Snapshot, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return rating.Snapshot{}, fmt.Errorf("begin rating transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var raw string
	err = tx.QueryRowContext(ctx,
		"SELECT ratings_histogram FROM games WHERE id = ?", entityID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return rating.Snapshot{}, fmt.Errorf("game %d not found", entityID)
		}
		return rating.Snapshot{}, fmt.Errorf("load rating histogram: %w", err)
	}

	hist := rating.Histogram{}
	if raw != "" && raw != "{}" {
		if err := json.Unmarshal([]byte(raw), &hist); err != nil {
			return rating.Snapshot{}, fmt.Errorf("decode rating histogram for game %d: %w", entityID, err)
		}
	}

	snap := apply(hist)

	encoded, err := json.Marshal(snap.Histogram)
	if err != nil {
		return rating.Snapshot{}, fmt.Errorf("encode rating histogram: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE games
		SET ratings_histogram = ?, rating_mean = ?, rating_top = ?, ratings_count = ?, updated = CURRENT_TIMESTAMP
		WHERE id = ?`,
		string(encoded), snap.Mean, snap.Top, snap.Count, entityID)
	if err != nil {
		return rating.Snapshot{}, fmt.Errorf("persist rating snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return rating.Snapshot{}, fmt.Errorf("commit rating transaction: %w", err)
	}
	return snap, nil
}

// rollbackQuietly rolls back a transaction; a rollback after commit is a
// no-op and its error is ignored.
func rollbackQuietly(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		logging.Warn().Err(err).Msg("Failed to roll back transaction")
	}
}
