// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// ConflictPolicy controls what an insert statement does when it hits an
// already existing row. Replace and Ignore are mutually exclusive.
type ConflictPolicy struct {
	Replace bool   // replace the existing row entirely
	Ignore  bool   // keep the existing row untouched
	Update  bool   // reassign columns from the new values (upsert)
	Key     string // conflict target column, usually the primary key
	Skip    string // column excluded from Update reassignment
}

// Dialect captures where SQL rendering differs between database flavors:
// identifier quoting, placeholders and insert conflict handling. Postgres
// is what the bundled pgx executor speaks; MySQL renders the same
// statements in its grammar for callers that export them.
type Dialect interface {
	Name() string

	// QuoteIdentifier quotes a table or column name, escaping embedded
	// quote characters.
	QuoteIdentifier(name string) string

	Placeholder() sq.PlaceholderFormat

	// BindType is the sqlx bindvar type used to rebind named statements.
	BindType() int

	// SupportsReturning reports whether generated keys can be read back
	// with a RETURNING clause.
	SupportsReturning() bool

	// CompileInsert assembles an insert of the value rows over the given
	// columns, applying the conflict policy. Table and column names come
	// in unquoted.
	CompileInsert(sb sq.StatementBuilderType, table string, columns []string, rows [][]any, policy ConflictPolicy) (sq.InsertBuilder, error)
}

var (
	Postgres Dialect = postgres{}
	MySQL    Dialect = mysql{}
)

type postgres struct{}

func (postgres) Name() string { return "postgres" }

func (postgres) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (postgres) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (postgres) BindType() int { return sqlx.DOLLAR }

func (postgres) SupportsReturning() bool { return true }

func (d postgres) CompileInsert(sb sq.StatementBuilderType, table string, columns []string, rows [][]any, policy ConflictPolicy) (sq.InsertBuilder, error) {
	q := sb.Insert(d.QuoteIdentifier(table)).Columns(quoteAll(d, columns)...)
	for _, values := range rows {
		q = q.Values(values...)
	}
	if policy.Replace && policy.Ignore {
		return q, ErrConflictPolicy
	}
	switch {
	case policy.Replace:
		// full row replacement, emulated as an upsert over every column
		return d.upsert(q, columns, policy.Key, "")
	case policy.Update:
		return d.upsert(q, columns, policy.Key, policy.Skip)
	case policy.Ignore:
		q = q.Suffix("ON CONFLICT DO NOTHING")
	}
	return q, nil
}

func (d postgres) upsert(q sq.InsertBuilder, columns []string, key, skip string) (sq.InsertBuilder, error) {
	if key == "" {
		return q, ErrNoPrimaryKey
	}
	assign := make([]string, 0, len(columns))
	for _, col := range columns {
		if col == skip {
			continue
		}
		qcol := d.QuoteIdentifier(col)
		assign = append(assign, qcol+" = EXCLUDED."+qcol)
	}
	if len(assign) == 0 {
		return q.Suffix("ON CONFLICT (" + d.QuoteIdentifier(key) + ") DO NOTHING"), nil
	}
	return q.Suffix("ON CONFLICT (" + d.QuoteIdentifier(key) + ") DO UPDATE SET " + strings.Join(assign, ", ")), nil
}

type mysql struct{}

func (mysql) Name() string { return "mysql" }

func (mysql) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (mysql) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (mysql) BindType() int { return sqlx.QUESTION }

func (mysql) SupportsReturning() bool { return false }

func (d mysql) CompileInsert(sb sq.StatementBuilderType, table string, columns []string, rows [][]any, policy ConflictPolicy) (sq.InsertBuilder, error) {
	q := sb.Insert(d.QuoteIdentifier(table))
	if policy.Replace {
		if policy.Ignore {
			return q, ErrConflictPolicy
		}
		q = sb.Replace(d.QuoteIdentifier(table))
	} else if policy.Ignore {
		q = q.Options("IGNORE")
	}
	q = q.Columns(quoteAll(d, columns)...)
	for _, values := range rows {
		q = q.Values(values...)
	}
	if policy.Update {
		assign := make([]string, 0, len(columns))
		for _, col := range columns {
			if col == policy.Skip {
				continue
			}
			qcol := d.QuoteIdentifier(col)
			assign = append(assign, qcol+" = VALUES("+qcol+")")
		}
		if len(assign) == 0 && policy.Key != "" {
			// self assignment, the MySQL spelling of DO NOTHING
			qkey := d.QuoteIdentifier(policy.Key)
			assign = append(assign, qkey+" = "+qkey)
		}
		if len(assign) > 0 {
			q = q.Suffix("ON DUPLICATE KEY UPDATE " + strings.Join(assign, ", "))
		}
	}
	return q, nil
}

func quoteAll(d Dialect, names []string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = d.QuoteIdentifier(name)
	}
	return quoted
}
