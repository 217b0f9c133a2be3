// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// InsertOpts controls conflict handling for Insert and InsertMany.
type InsertOpts struct {
	// Replace overwrites an existing row with the same primary key.
	Replace bool
	// Ignore drops the new row when it conflicts with an existing one.
	Ignore bool
}

// Insert adds a single row and returns its generated primary key, or nil
// when the dialect cannot report one or an ignored conflict swallowed the
// row. Auto-timestamp columns are filled in unless already present.
func (t *Table) Insert(ctx context.Context, row Row, opts InsertOpts) (any, error) {
	done := t.instrument("insert")
	id, err := t.insertRow(ctx, t.pool, row, opts)
	return id, done(err)
}

// InsertMany adds all rows in a single transaction and returns their
// generated primary keys in input order. Any failure rolls the whole
// batch back.
func (t *Table) InsertMany(ctx context.Context, rows []Row, opts InsertOpts) ([]any, error) {
	done := t.instrument("insert_many")
	if len(rows) == 0 {
		return nil, done(ErrNoData)
	}
	ids, err := t.insertAll(ctx, rows, opts)
	return ids, done(err)
}

func (t *Table) insertAll(ctx context.Context, rows []Row, opts InsertOpts) ([]any, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Rollback is safe to call even if the tx is already closed
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		id, err := t.insertRow(ctx, tx, row, opts)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func (t *Table) insertRow(ctx context.Context, ex executor, row Row, opts InsertOpts) (any, error) {
	if len(row) == 0 {
		return nil, ErrNoData
	}
	row = t.stamped(row, t.cfg.AutoCreated, t.cfg.AutoUpdated)
	columns := sortedColumns(row)

	q, err := t.d.CompileInsert(t.sb, t.name, columns, [][]any{rowValues(row, columns)}, ConflictPolicy{
		Replace: opts.Replace,
		Ignore:  opts.Ignore,
		Key:     t.cfg.PrimaryKey,
	})
	if err != nil {
		return nil, err
	}

	if t.cfg.PrimaryKey != "" && t.d.SupportsReturning() {
		sql, args, err := q.Suffix("RETURNING " + t.d.QuoteIdentifier(t.cfg.PrimaryKey)).ToSql()
		if err != nil {
			return nil, err
		}
		t.trace("insert", sql, args)
		var id any
		if err := ex.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Ignore swallowed a conflicting row
				return nil, nil
			}
			return nil, err
		}
		return id, nil
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	t.trace("insert", sql, args)
	if _, err := ex.Exec(ctx, sql, args...); err != nil {
		return nil, err
	}
	return nil, nil
}

// InsertOrUpdate writes all rows in one statement, updating rows whose
// primary key already exists. Every row must provide the same columns as
// the first one. The creation timestamp is injected on insert but kept
// unchanged on update. The returned count follows the dialect's
// convention for upserts, so it can exceed the number of input rows.
func (t *Table) InsertOrUpdate(ctx context.Context, rows []Row) (int64, error) {
	done := t.instrument("upsert")
	if len(rows) == 0 {
		return 0, done(ErrNoData)
	}

	stamped := make([]Row, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return 0, done(ErrNoData)
		}
		stamped[i] = t.stamped(row, t.cfg.AutoCreated, t.cfg.AutoUpdated)
	}

	columns := sortedColumns(stamped[0])
	values := make([][]any, len(stamped))
	for i, row := range stamped {
		values[i] = rowValues(row, columns)
	}

	q, err := t.d.CompileInsert(t.sb, t.name, columns, values, ConflictPolicy{
		Update: true,
		Key:    t.cfg.PrimaryKey,
		Skip:   t.cfg.AutoCreated,
	})
	if err != nil {
		return 0, done(err)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, done(err)
	}
	t.trace("upsert", sql, args)
	tag, err := t.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, done(err)
	}
	return tag.RowsAffected(), done(nil)
}
