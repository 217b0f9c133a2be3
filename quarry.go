// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

// Package quarry translates declarative filter and field descriptions into
// parameterized SQL and runs the resulting statements against a single
// relational table.
//
// A Table is configured once and stateless afterwards, so one value can be
// shared by concurrent callers as long as the underlying pool is safe for
// concurrent use (pgxpool is). Values always travel as bound parameters;
// identifiers are quoted by the configured Dialect.
package quarry

import (
	"context"
	"maps"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

// Row is a single table row exchanged with the database, column name to
// scalar value. No typed schema is enforced by this layer.
type Row map[string]any

// PgxIface is the connection surface a Table needs. Both *pgxpool.Pool and
// pgxmock pools satisfy it.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// executor is the subset of PgxIface shared with pgx.Tx, so single inserts
// run on the pool and batch inserts inside a transaction.
type executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config is the construction-time configuration of a Table. It is not
// mutable at runtime; the operation set is fixed and configuration is the
// only extension point.
type Config struct {
	// Table is the logical table name, mapped through ResolveTable.
	Table string

	// PrimaryKey is the key column. Empty disables Get, generated-key
	// results and marker pagination.
	PrimaryKey string

	// AutoCreated names the creation-timestamp column, filled into written
	// rows when absent. Empty disables.
	AutoCreated string

	// AutoUpdated names the update-timestamp column, filled into written
	// and updated rows when absent. Empty disables.
	AutoUpdated string

	// Now supplies auto-timestamp values. Defaults to integer epoch
	// seconds; override for datetime-string schemas.
	Now func() any

	// Dialect defaults to Postgres. The bundled executor speaks pgx;
	// other dialects are for rendering statements.
	Dialect Dialect

	// ResolveTable maps the logical table name to the physical one
	// (prefixing, sharding). Defaults to identity.
	ResolveTable func(string) string
}

// Table executes translated statements against one table.
type Table struct {
	pool PgxIface
	cfg  Config
	d    Dialect
	name string // physical table name, unquoted
	sb   sq.StatementBuilderType
}

// New builds a Table for the given pool and configuration.
func New(pool PgxIface, cfg Config) (*Table, error) {
	if cfg.Table == "" {
		return nil, ErrNoTable
	}
	if cfg.Dialect == nil {
		cfg.Dialect = Postgres
	}
	if cfg.Now == nil {
		cfg.Now = func() any { return time.Now().Unix() }
	}
	name := cfg.Table
	if cfg.ResolveTable != nil {
		name = cfg.ResolveTable(name)
	}
	return &Table{
		pool: pool,
		cfg:  cfg,
		d:    cfg.Dialect,
		name: name,
		sb:   sq.StatementBuilder.PlaceholderFormat(cfg.Dialect.Placeholder()),
	}, nil
}

func (t *Table) relation() string {
	return t.d.QuoteIdentifier(t.name)
}

// stamped returns a copy of data with the given timestamp columns filled in
// where absent. The clock is read at most once, so all columns of one
// statement carry the same stamp. The caller's map is never modified.
func (t *Table) stamped(data Row, columns ...string) Row {
	row := make(Row, len(data)+len(columns))
	maps.Copy(row, data)
	var now any
	for _, col := range columns {
		if col == "" {
			continue
		}
		if _, ok := row[col]; !ok {
			if now == nil {
				now = t.cfg.Now()
			}
			row[col] = now
		}
	}
	return row
}

func (t *Table) trace(op, sql string, args []any) {
	log.WithFields(log.Fields{"table": t.name, "args": args}).Debugf("quarry.%s: %s", op, sql)
}

func sortedColumns(row Row) []string {
	return slices.Sorted(maps.Keys(row))
}

func rowValues(row Row, columns []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		values[i] = row[col]
	}
	return values
}
