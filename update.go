// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"context"
	"maps"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Update sets the given columns on all rows matching the filter and
// returns the number of affected rows. The update timestamp column is
// filled in unless already present.
func (t *Table) Update(ctx context.Context, row Row, filter Filter) (int64, error) {
	done := t.instrument("update")
	if len(row) == 0 {
		return 0, done(ErrNoData)
	}
	row = t.stamped(row, t.cfg.AutoUpdated)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(t.relation())
	sb.WriteString(" SET ")
	for i, column := range sortedColumns(row) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.d.QuoteIdentifier(column))
		sb.WriteString(" = :")
		sb.WriteString(column)
	}

	// named SET placeholders first, then the filter's positional ones,
	// so the argument order survives the rebind
	var filterArgs []any
	if where := filter.Clause(t.d); where != nil {
		whereSQL, whereArgs, err := where.ToSql()
		if err != nil {
			return 0, done(err)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(whereSQL)
		filterArgs = whereArgs
	}

	sql, args, err := sqlx.Named(sb.String(), map[string]any(row))
	if err != nil {
		return 0, done(err)
	}
	args = append(args, filterArgs...)
	sql = sqlx.Rebind(t.d.BindType(), sql)

	t.trace("update", sql, args)
	tag, err := t.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, done(err)
	}
	return tag.RowsAffected(), done(nil)
}

// Increment adds the given deltas to numeric columns on all rows matching
// the filter, atomically in a single statement, and returns the number of
// affected rows. Negative deltas decrement. The update timestamp column
// is refreshed unless it is itself incremented.
func (t *Table) Increment(ctx context.Context, deltas map[string]int64, filter Filter) (int64, error) {
	done := t.instrument("increment")
	if len(deltas) == 0 {
		return 0, done(ErrNoData)
	}

	q := t.sb.Update(t.relation())
	for _, column := range slices.Sorted(maps.Keys(deltas)) {
		qcol := t.d.QuoteIdentifier(column)
		q = q.Set(qcol, sq.Expr(qcol+" + ?", deltas[column]))
	}
	if auto := t.cfg.AutoUpdated; auto != "" {
		if _, ok := deltas[auto]; !ok {
			q = q.Set(t.d.QuoteIdentifier(auto), t.cfg.Now())
		}
	}
	if where := filter.Clause(t.d); where != nil {
		q = q.Where(where)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, done(err)
	}
	t.trace("increment", sql, args)
	tag, err := t.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, done(err)
	}
	return tag.RowsAffected(), done(nil)
}
