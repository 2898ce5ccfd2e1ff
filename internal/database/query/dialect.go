// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package query

import (
	"fmt"
	"strings"
)

// Dialect renders the warehouse-specific parts of a query.
type Dialect interface {
	// Name identifies the dialect in logs and metrics.
	Name() string
	// Table returns the quoted, fully qualified table reference.
	Table(name string) string
	// Placeholder returns the parameter marker for a bound value.
	Placeholder(name string) string
	// CountIf counts rows matching cond.
	CountIf(cond string) string
	// DaysBetween returns whole days from the date expression from to to.
	DaysBetween(from, to string) string
	// Median returns the 50th percentile of expr.
	Median(expr string) string
	// Integer casts an integer aggregate so drivers decode it as int64.
	Integer(expr string) string
	// LikeEscape is appended after a LIKE pattern that uses backslash escapes.
	LikeEscape() string
}

// BigQuery is the production dialect.
type BigQuery struct {
	Project string
	Dataset string
}

// Name implements Dialect.
func (BigQuery) Name() string { return "bigquery" }

// Table implements Dialect.
func (d BigQuery) Table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", d.Project, d.Dataset, name)
}

// Placeholder implements Dialect.
func (BigQuery) Placeholder(name string) string { return "@" + name }

// CountIf implements Dialect.
func (BigQuery) CountIf(cond string) string { return "COUNTIF(" + cond + ")" }

// DaysBetween implements Dialect.
func (BigQuery) DaysBetween(from, to string) string {
	return fmt.Sprintf("DATE_DIFF(%s, %s, DAY)", to, from)
}

// Median implements Dialect. BigQuery has no exact aggregate median, so
// this is the approximate quantile.
func (BigQuery) Median(expr string) string {
	return fmt.Sprintf("APPROX_QUANTILES(%s, 2)[SAFE_OFFSET(1)]", expr)
}

// Integer implements Dialect. BigQuery integer aggregates are already INT64.
func (BigQuery) Integer(expr string) string { return expr }

// LikeEscape implements Dialect. Backslash is BigQuery's LIKE escape.
func (BigQuery) LikeEscape() string { return "" }

// DuckDB is the embedded dialect used for local runs and tests.
type DuckDB struct{}

// Name implements Dialect.
func (DuckDB) Name() string { return "duckdb" }

// Table implements Dialect.
func (DuckDB) Table(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Placeholder implements Dialect.
func (DuckDB) Placeholder(string) string { return "?" }

// CountIf implements Dialect.
func (DuckDB) CountIf(cond string) string {
	return "COUNT(*) FILTER (WHERE " + cond + ")"
}

// DaysBetween implements Dialect.
func (DuckDB) DaysBetween(from, to string) string {
	return fmt.Sprintf("date_diff('day', %s, %s)", from, to)
}

// Median implements Dialect.
func (DuckDB) Median(expr string) string { return "median(" + expr + ")" }

// Integer implements Dialect. SUM over BIGINT is HUGEINT in DuckDB.
func (DuckDB) Integer(expr string) string { return "CAST(" + expr + " AS BIGINT)" }

// LikeEscape implements Dialect.
func (DuckDB) LikeEscape() string { return ` ESCAPE '\'` }
