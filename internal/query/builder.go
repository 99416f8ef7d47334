// Playdex - Game Catalog List & Ranking Engine
// Copyright 2026 Playdex Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package query

import (
	"fmt"
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
// It keeps all values out of the SQL text, so the predicate can never be
// shaped by user input.
//
// Example:
//
//	wb := query.NewWhereBuilder()
//	wb.AddIn("g.id", []int64{1, 2})
//	whereClause, args := wb.Build()
//	// "g.id IN (?, ?)", [1 2]
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates an empty WhereBuilder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition fragment with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn adds "column IN (?, ...)" for the given IDs. Empty slices are
// skipped so an absent filter category contributes no predicate.
func (wb *WhereBuilder) AddIn(column string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, placeholders(len(ids))))
	for _, id := range ids {
		wb.args = append(wb.args, id)
	}
	return wb
}

// AddExistsIn adds an EXISTS subquery over an association table, matching
// games linked to any of the given IDs. The subquery template must contain
// exactly one %s for the IN placeholder list.
func (wb *WhereBuilder) AddExistsIn(template string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		return wb
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf(template, placeholders(len(ids))))
	for _, id := range ids {
		wb.args = append(wb.args, id)
	}
	return wb
}

// Build returns the WHERE clause body and its arguments. Clauses are
// joined with AND; an empty builder yields "1=1" for safe concatenation.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// Count returns the number of clauses added so far.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// placeholders returns "?, ?, ..." with n entries.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
