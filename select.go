// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// SelectOpts controls a Select or Query call. The zero value selects all
// columns of all rows.
type SelectOpts struct {
	Fields Fields
	Filter Filter
	Order  Order

	// Limit caps the number of rows returned. Zero means no limit, and
	// Offset is only applied when a limit is set.
	Limit  uint64
	Offset uint64

	// Marker enables keyset pagination: only rows sorting after the row
	// whose primary key equals Marker are returned. Requires a primary
	// key; when no Order is given the result is ordered by it.
	Marker any
}

// PageOpts controls a Page call.
type PageOpts struct {
	Fields Fields
	Filter Filter
	Order  Order

	// Page is the 1-based page number, Size the number of rows per page.
	Page uint64
	Size uint64
}

func (t *Table) buildSelect(opts SelectOpts) sq.SelectBuilder {
	q := t.sb.Select(opts.Fields.list(t.d)...).From(t.relation())
	if where := opts.Filter.Clause(t.d); where != nil {
		q = q.Where(where)
	}
	if clauses := opts.Order.clauses(t.d); len(clauses) > 0 {
		q = q.OrderBy(clauses...)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
		if opts.Offset > 0 {
			q = q.Offset(opts.Offset)
		}
	}
	return q
}

func (t *Table) selectQuery(ctx context.Context, opts SelectOpts) (sq.SelectBuilder, error) {
	if opts.Marker == nil {
		return t.buildSelect(opts), nil
	}
	if t.cfg.PrimaryKey == "" {
		return sq.SelectBuilder{}, ErrNoPrimaryKey
	}
	if len(opts.Order) == 0 {
		opts.Order = Order{Asc(t.cfg.PrimaryKey)}
	}
	q := t.buildSelect(opts)
	after, err := t.markerClause(ctx, opts.Order, opts.Marker)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	return q.Where(after), nil
}

// markerClause fetches the sort column values of the marker row and builds
// the keyset condition that matches everything sorting strictly after it.
func (t *Table) markerClause(ctx context.Context, order Order, marker any) (sq.Sqlizer, error) {
	columns := make([]string, len(order))
	for i, sort := range order {
		columns[i] = t.d.QuoteIdentifier(sort.Column)
	}
	sql, args, err := t.sb.Select(columns...).
		From(t.relation()).
		Where(sq.Eq{t.d.QuoteIdentifier(t.cfg.PrimaryKey): uuidScalar(marker)}).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := Row{}
	if err := pgxscan.Get(ctx, t.pool, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrInvalidMarker
		}
		return nil, err
	}

	// workaround so squirrel doesn't complain about arrays from uuids
	for key, val := range row {
		row[key] = uuidScalar(val)
	}

	variants := make([]sq.Sqlizer, 0, len(order))
	for i, sort := range order {
		chain := make(sq.And, 0, i+1)
		for _, prev := range order[:i] {
			chain = append(chain, sq.Eq{t.d.QuoteIdentifier(prev.Column): row[prev.Column]})
		}
		qcol := t.d.QuoteIdentifier(sort.Column)
		if sort.ascending() {
			chain = append(chain, sq.Gt{qcol: row[sort.Column]})
		} else {
			chain = append(chain, sq.Lt{qcol: row[sort.Column]})
		}
		variants = append(variants, chain)
	}
	return sq.Or(variants), nil
}

// Query runs a select and returns the raw rows for the caller to iterate.
func (t *Table) Query(ctx context.Context, opts SelectOpts) (pgx.Rows, error) {
	done := t.instrument("select")
	q, err := t.selectQuery(ctx, opts)
	if err != nil {
		return nil, done(err)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, done(err)
	}
	t.trace("select", sql, args)
	rows, err := t.pool.Query(ctx, sql, args...)
	return rows, done(err)
}

// Select returns the matching rows as maps keyed by column name.
func (t *Table) Select(ctx context.Context, opts SelectOpts) ([]Row, error) {
	rows, err := t.Query(ctx, opts)
	if err != nil {
		return nil, err
	}
	var result []Row
	if err := pgxscan.ScanAll(&result, rows); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectInto scans the matching rows into dest, which must be a pointer
// to a slice of structs or maps.
func (t *Table) SelectInto(ctx context.Context, dest any, opts SelectOpts) error {
	done := t.instrument("select")
	q, err := t.selectQuery(ctx, opts)
	if err != nil {
		return done(err)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return done(err)
	}
	t.trace("select", sql, args)
	return done(pgxscan.Select(ctx, t.pool, dest, sql, args...))
}

// Get fetches a single row by primary key, or nil when no row matches.
func (t *Table) Get(ctx context.Context, id any) (Row, error) {
	row := Row{}
	if err := t.GetInto(ctx, &row, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// GetInto fetches a single row by primary key into dest. A miss is
// reported as pgx.ErrNoRows.
func (t *Table) GetInto(ctx context.Context, dest any, id any) error {
	done := t.instrument("get")
	if t.cfg.PrimaryKey == "" {
		return done(ErrNoPrimaryKey)
	}
	sql, args, err := t.sb.Select("*").
		From(t.relation()).
		Where(sq.Eq{t.d.QuoteIdentifier(t.cfg.PrimaryKey): id}).
		ToSql()
	if err != nil {
		return done(err)
	}
	t.trace("get", sql, args)
	if err := pgxscan.Get(ctx, t.pool, dest, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			// a miss is not a failure, keep it out of the error metrics
			done(nil)
			return err
		}
		return done(err)
	}
	return done(nil)
}

// Count returns the number of rows matching the filter.
func (t *Table) Count(ctx context.Context, filter Filter) (int64, error) {
	done := t.instrument("count")
	q := t.sb.Select("COUNT(*)").From(t.relation())
	if where := filter.Clause(t.d); where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, done(err)
	}
	t.trace("count", sql, args)
	var count int64
	err = t.pool.QueryRow(ctx, sql, args...).Scan(&count)
	return count, done(err)
}

// Page returns one page of matching rows. Page numbers start at 1; page
// zero behaves like page one.
func (t *Table) Page(ctx context.Context, opts PageOpts) ([]Row, error) {
	limit, offset := pageWindow(opts.Page, opts.Size)
	return t.Select(ctx, SelectOpts{
		Fields: opts.Fields,
		Filter: opts.Filter,
		Order:  opts.Order,
		Limit:  limit,
		Offset: offset,
	})
}

func pageWindow(page, size uint64) (limit, offset uint64) {
	if page > 0 && size > 0 {
		return size, (page - 1) * size
	}
	return size, 0
}
