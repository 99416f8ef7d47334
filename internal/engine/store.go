// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package engine

import (
	"context"

	"github.com/playdex/playdex/internal/query"
)

// Store is the relational collaborator: filtered, ordered, offset/limit ID
// selection plus an exact count sharing the same predicate.
type Store interface {
	// SelectIDs returns game IDs matching the spec, ordered by
	// spec.Order (with the deterministic id-descending secondary key).
	// limit < 0 selects all matching rows.
	SelectIDs(ctx context.Context, spec query.FilterSpec, offset, limit int) ([]int64, error)

	// Count returns the exact number of games matching the spec's
	// relational predicate.
	Count(ctx context.Context, spec query.FilterSpec) (int, error)
}
