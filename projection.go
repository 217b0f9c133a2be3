// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import "strings"

// Field selects a column for projection, optionally renamed in the
// result set.
type Field struct {
	Column string
	Alias  string
}

// Fields is the projection of a query. An empty projection selects all
// columns.
type Fields []Field

// Cols builds a projection from plain column names.
func Cols(names ...string) Fields {
	fields := make(Fields, len(names))
	for i, name := range names {
		fields[i] = Field{Column: name}
	}
	return fields
}

func (f Fields) list(d Dialect) []string {
	if len(f) == 0 {
		return []string{"*"}
	}
	columns := make([]string, len(f))
	for i, field := range f {
		columns[i] = d.QuoteIdentifier(field.Column)
		if field.Alias != "" {
			columns[i] += " AS " + d.QuoteIdentifier(field.Alias)
		}
	}
	return columns
}

// Sort orders a result set by one column. Direction is "ASC" or "DESC",
// compared case-insensitively; empty sorts ascending, anything else
// descending.
type Sort struct {
	Column    string
	Direction string
}

// Order is the sort specification of a query, applied in element order.
type Order []Sort

// Asc sorts by column in ascending order.
func Asc(column string) Sort {
	return Sort{Column: column, Direction: "ASC"}
}

// Desc sorts by column in descending order.
func Desc(column string) Sort {
	return Sort{Column: column, Direction: "DESC"}
}

func (s Sort) ascending() bool {
	return strings.EqualFold(s.Direction, "ASC") || s.Direction == ""
}

func (o Order) clauses(d Dialect) []string {
	clauses := make([]string, len(o))
	for i, sort := range o {
		direction := "DESC"
		if sort.ascending() {
			direction = "ASC"
		}
		clauses[i] = d.QuoteIdentifier(sort.Column) + " " + direction
	}
	return clauses
}
