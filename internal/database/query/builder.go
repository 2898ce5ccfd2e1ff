// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package query

import (
	"fmt"
	"strings"
)

// Param is one bound value.
type Param struct {
	Name  string
	Value any
}

// Spec is a rendered query: text plus bound parameters in placeholder order.
type Spec struct {
	Text   string
	Params []Param
}

// Args returns the parameter values in placeholder order, for positional
// drivers.
func (s Spec) Args() []any {
	args := make([]any, len(s.Params))
	for i, p := range s.Params {
		args[i] = p.Value
	}
	return args
}

// Binder collects bound parameters for one query. Values must be bound in
// the order their placeholders appear in the final text.
type Binder struct {
	dialect Dialect
	params  []Param
	seen    map[string]int
}

// NewBinder creates a Binder for d.
func NewBinder(d Dialect) *Binder {
	return &Binder{dialect: d, params: []Param{}, seen: map[string]int{}}
}

// Bind records value and returns its placeholder. A name bound twice is
// suffixed so named dialects never see duplicates.
func (b *Binder) Bind(name string, value any) string {
	b.seen[name]++
	if n := b.seen[name]; n > 1 {
		name = fmt.Sprintf("%s_%d", name, n)
	}
	b.params = append(b.params, Param{Name: name, Value: value})
	return b.dialect.Placeholder(name)
}

// Spec finishes the query.
func (b *Binder) Spec(text string) Spec {
	return Spec{Text: text, Params: b.params}
}

// WhereBuilder constructs SQL WHERE clauses whose values go through a Binder.
//
// Example usage:
//
//	b := query.NewBinder(query.DuckDB{})
//	wb := query.NewWhereBuilder(b)
//	wb.AddSearch("name", "half-life")
//	wb.AddMin("price", "min_price", 100.0)
//	where := wb.BuildWithPrefix()
//	// WHERE LOWER(name) LIKE ? ESCAPE '\' AND price >= ?
type WhereBuilder struct {
	binder  *Binder
	clauses []string
}

// NewWhereBuilder creates a new WhereBuilder binding into b.
func NewWhereBuilder(b *Binder) *WhereBuilder {
	return &WhereBuilder{binder: b, clauses: []string{}}
}

// AddSearch adds a case-insensitive substring match on column. An empty
// term is skipped.
func (wb *WhereBuilder) AddSearch(column, term string) *WhereBuilder {
	if term == "" {
		return wb
	}
	pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
	wb.clauses = append(wb.clauses, fmt.Sprintf("LOWER(%s) LIKE %s%s",
		column, wb.binder.Bind("search", pattern), wb.binder.dialect.LikeEscape()))
	return wb
}

// AddEquals adds column = value.
func (wb *WhereBuilder) AddEquals(column, name string, value any) *WhereBuilder {
	wb.clauses = append(wb.clauses, column+" = "+wb.binder.Bind(name, value))
	return wb
}

// AddMin adds column >= value.
func (wb *WhereBuilder) AddMin(column, name string, value any) *WhereBuilder {
	wb.clauses = append(wb.clauses, column+" >= "+wb.binder.Bind(name, value))
	return wb
}

// AddMax adds column <= value.
func (wb *WhereBuilder) AddMax(column, name string, value any) *WhereBuilder {
	wb.clauses = append(wb.clauses, column+" <= "+wb.binder.Bind(name, value))
	return wb
}

// Build joins the clauses with AND. Returns "1=1" if no clauses were added.
func (wb *WhereBuilder) Build() string {
	if len(wb.clauses) == 0 {
		return "1=1"
	}
	return strings.Join(wb.clauses, " AND ")
}

// BuildWithPrefix returns Build with a "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() string {
	return "WHERE " + wb.Build()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards with backslashes.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
