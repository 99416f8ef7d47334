// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playdex/playdex/internal/search"
)

// SearchIndex is the built-in name-match index used when no external
// full-text service is configured. Scoring is positional: exact matches
// beat prefix matches beat substring matches. It honors the same
// contract as a remote index, including ID restriction sets.
type SearchIndex struct {
	db *DB
}

// NewSearchIndex creates the index over the given database.
func NewSearchIndex(db *DB) *SearchIndex {
	return &SearchIndex{db: db}
}

// Query matches game names against text, restricted to the given IDs when
// non-empty, returning at most limit hits in relevance order.
func (s *SearchIndex) Query(ctx context.Context, text string, restrict []int64, limit int) ([]search.Hit, error) {
	start := time.Now()

	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT g.id,
			CASE
				WHEN lower(g.name) = ? THEN 3.0
				WHEN lower(g.name) LIKE ? THEN 2.0
				ELSE 1.0
			END + g.weighted_rating / 100.0 AS score
		FROM games g
		WHERE lower(g.name) LIKE ?`)
	args := []interface{}{needle, needle + "%", "%" + needle + "%"}

	if len(restrict) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(restrict)), ",")
		fmt.Fprintf(&sb, " AND g.id IN (%s)", placeholders)
		for _, id := range restrict {
			args = append(args, id)
		}
	}
	sb.WriteString(" ORDER BY score DESC, g.id DESC")
	if limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.conn.QueryContext(ctx, sb.String(), args...)
	observe("search_index", start, err)
	if err != nil {
		return nil, fmt.Errorf("query search index: %w", err)
	}
	defer rows.Close()

	var hits []search.Hit
	for rows.Next() {
		var h search.Hit
		if err := rows.Scan(&h.ID, &h.Score); err != nil {
			return nil, fmt.Errorf("scan search hit: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query search index: %w", err)
	}
	return hits, nil
}

var _ search.Index = (*SearchIndex)(nil)
