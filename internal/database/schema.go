// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the catalog tables. Games carry the rating
// aggregate fields owned by the engine; the association tables back the
// filter predicates. ratings_histogram is JSON-encoded text.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		slug VARCHAR NOT NULL DEFAULT '',
		released DATE NOT NULL DEFAULT DATE '1900-01-01',
		tba BOOLEAN NOT NULL DEFAULT FALSE,
		metacritic INTEGER NOT NULL DEFAULT 0,
		added INTEGER NOT NULL DEFAULT 0,
		rating_mean DOUBLE NOT NULL DEFAULT 0,
		rating_top INTEGER NOT NULL DEFAULT 0,
		ratings_histogram VARCHAR NOT NULL DEFAULT '{}',
		ratings_count INTEGER NOT NULL DEFAULT 0,
		weighted_rating DOUBLE NOT NULL DEFAULT 0,
		parent_id BIGINT,
		series_id BIGINT,
		created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS platforms (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL,
		parent_id BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stores (
		id BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_platforms (
		game_id BIGINT NOT NULL,
		platform_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_genres (
		game_id BIGINT NOT NULL,
		genre_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_stores (
		game_id BIGINT NOT NULL,
		store_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_creators (
		game_id BIGINT NOT NULL,
		creator_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS collection_games (
		collection_id BIGINT NOT NULL,
		game_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS library_games (
		user_id BIGINT NOT NULL,
		game_id BIGINT NOT NULL,
		added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_added ON games (added DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_games_released ON games (released DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_game_platforms ON game_platforms (game_id, platform_id)`,
	`CREATE INDEX IF NOT EXISTS idx_library_games ON library_games (user_id, game_id)`,
}

// initialize creates the schema.
func (db *DB) initialize(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
