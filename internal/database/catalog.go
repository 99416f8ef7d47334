// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/playdex/playdex/internal/query"
)

// SelectIDs returns the IDs of games matching the spec's relational
// predicate, ordered by the spec's ordering with the deterministic
// secondary key. A negative limit selects the full matching set.
//
// Count and SelectIDs render the same predicate, so the reported total is
// always consistent with the rows a caller can page through.
func (db *DB) SelectIDs(ctx context.Context, spec query.FilterSpec, offset, limit int) ([]int64, error) {
	start := time.Now()

	where, args := spec.Where()
	q := fmt.Sprintf("SELECT g.id FROM games g WHERE %s ORDER BY %s", where, spec.Order.Clause())
	if limit >= 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	ids, err := db.queryInt64s(ctx, q, args...)
	observe("select_ids", start, err)
	if err != nil {
		return nil, fmt.Errorf("select game ids: %w", err)
	}
	return ids, nil
}

// Count returns the number of games matching the spec's relational
// predicate. The ordering is deliberately not part of the query.
func (db *DB) Count(ctx context.Context, spec query.FilterSpec) (int, error) {
	start := time.Now()

	where, args := spec.Where()
	q := fmt.Sprintf("SELECT COUNT(*) FROM games g WHERE %s", where)

	var count int
	err := db.conn.QueryRowContext(ctx, q, args...).Scan(&count)
	observe("count", start, err)
	if err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return count, nil
}
