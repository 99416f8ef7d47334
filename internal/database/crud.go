// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/playdex/playdex/internal/models"
)

// InsertGame writes one catalog entity. An unknown release date is stored
// as the sentinel so date comparisons stay total.
func (db *DB) InsertGame(ctx context.Context, g *models.Game) error {
	start := time.Now()

	released := g.Released
	if released.IsZero() {
		released = models.SentinelReleaseDate
	}
	var parentID, seriesID interface{}
	if g.ParentID != 0 {
		parentID = g.ParentID
	}
	if g.SeriesID != 0 {
		seriesID = g.SeriesID
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO games (id, name, slug, released, tba, metacritic, added,
			rating_mean, rating_top, ratings_count, weighted_rating, parent_id, series_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Slug, released, g.TBA, g.Metacritic, g.Added,
		g.RatingMean, g.RatingTop, g.RatingsCount, g.WeightedRating, parentID, seriesID)
	observe("insert_game", start, err)
	if err != nil {
		return fmt.Errorf("insert game %d: %w", g.ID, err)
	}
	return nil
}

// InsertPlatform writes one platform reference entry.
func (db *DB) InsertPlatform(ctx context.Context, p *models.Platform) error {
	var parentID interface{}
	if p.ParentID != 0 {
		parentID = p.ParentID
	}
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO platforms (id, name, parent_id) VALUES (?, ?, ?)",
		p.ID, p.Name, parentID)
	if err != nil {
		return fmt.Errorf("insert platform %d: %w", p.ID, err)
	}
	return nil
}

// InsertGenre writes one genre reference entry.
func (db *DB) InsertGenre(ctx context.Context, g *models.Genre) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO genres (id, name) VALUES (?, ?)", g.ID, g.Name)
	if err != nil {
		return fmt.Errorf("insert genre %d: %w", g.ID, err)
	}
	return nil
}

// InsertStore writes one store reference entry.
func (db *DB) InsertStore(ctx context.Context, s *models.Store) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO stores (id, name) VALUES (?, ?)", s.ID, s.Name)
	if err != nil {
		return fmt.Errorf("insert store %d: %w", s.ID, err)
	}
	return nil
}

// link inserts one row into an association table.
func (db *DB) link(ctx context.Context, table, col string, gameID, otherID int64) error {
	q := fmt.Sprintf("INSERT INTO %s (game_id, %s) VALUES (?, ?)", table, col)
	if _, err := db.conn.ExecContext(ctx, q, gameID, otherID); err != nil {
		return fmt.Errorf("link game %d in %s: %w", gameID, table, err)
	}
	return nil
}

// LinkPlatform associates a game with a platform.
func (db *DB) LinkPlatform(ctx context.Context, gameID, platformID int64) error {
	return db.link(ctx, "game_platforms", "platform_id", gameID, platformID)
}

// LinkGenre associates a game with a genre.
func (db *DB) LinkGenre(ctx context.Context, gameID, genreID int64) error {
	return db.link(ctx, "game_genres", "genre_id", gameID, genreID)
}

// LinkStore associates a game with a store.
func (db *DB) LinkStore(ctx context.Context, gameID, storeID int64) error {
	return db.link(ctx, "game_stores", "store_id", gameID, storeID)
}

// LinkCreator associates a game with a creator.
func (db *DB) LinkCreator(ctx context.Context, gameID, creatorID int64) error {
	return db.link(ctx, "game_creators", "creator_id", gameID, creatorID)
}

// AddToCollection places a game in a curated collection.
func (db *DB) AddToCollection(ctx context.Context, collectionID, gameID int64) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO collection_games (collection_id, game_id) VALUES (?, ?)",
		collectionID, gameID)
	if err != nil {
		return fmt.Errorf("add game %d to collection %d: %w", gameID, collectionID, err)
	}
	return nil
}

// AddToLibrary records that a user added a game to their library. The
// per-game counters are refreshed in bulk by the popularity job.
func (db *DB) AddToLibrary(ctx context.Context, userID, gameID int64) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO library_games (user_id, game_id) VALUES (?, ?)",
		userID, gameID)
	if err != nil {
		return fmt.Errorf("add game %d to library of user %d: %w", gameID, userID, err)
	}
	return nil
}

// LibraryGameIDs returns the IDs of games in a user's library, most
// recently added first.
func (db *DB) LibraryGameIDs(ctx context.Context, userID int64) ([]int64, error) {
	start := time.Now()
	ids, err := db.queryInt64s(ctx,
		"SELECT game_id FROM library_games WHERE user_id = ? ORDER BY added_at DESC, game_id DESC", userID)
	observe("library_game_ids", start, err)
	if err != nil {
		return nil, fmt.Errorf("load library for user %d: %w", userID, err)
	}
	return ids, nil
}

// ListPlatforms returns all platform reference entries ordered by name.
func (db *DB) ListPlatforms(ctx context.Context) ([]models.Platform, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name, COALESCE(parent_id, 0) FROM platforms ORDER BY name, id")
	observe("list_platforms", start, err)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	defer rows.Close()

	var out []models.Platform
	for rows.Next() {
		var p models.Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.ParentID); err != nil {
			return nil, fmt.Errorf("scan platform: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	return out, nil
}

// ListGenres returns all genre reference entries ordered by name.
func (db *DB) ListGenres(ctx context.Context) ([]models.Genre, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name FROM genres ORDER BY name, id")
	observe("list_genres", start, err)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var out []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return out, nil
}

// ListStores returns all store reference entries ordered by name.
func (db *DB) ListStores(ctx context.Context) ([]models.Store, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name FROM stores ORDER BY name, id")
	observe("list_stores", start, err)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var out []models.Store
	for rows.Next() {
		var s models.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return out, nil
}

// GetGame loads one game by ID.
func (db *DB) GetGame(ctx context.Context, id int64) (*models.Game, error) {
	start := time.Now()
	var g models.Game
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, name, slug, released, tba, metacritic, added,
			rating_mean, rating_top, ratings_count, weighted_rating,
			COALESCE(parent_id, 0), COALESCE(series_id, 0), created, updated
		FROM games WHERE id = ?`, id).Scan(
		&g.ID, &g.Name, &g.Slug, &g.Released, &g.TBA, &g.Metacritic, &g.Added,
		&g.RatingMean, &g.RatingTop, &g.RatingsCount, &g.WeightedRating,
		&g.ParentID, &g.SeriesID, &g.Created, &g.Updated)
	observe("get_game", start, err)
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	return &g, nil
}
