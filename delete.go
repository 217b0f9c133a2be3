// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import "context"

// Delete removes all rows matching the filter and returns the number of
// deleted rows. An empty filter deletes every row in the table.
func (t *Table) Delete(ctx context.Context, filter Filter) (int64, error) {
	done := t.instrument("delete")
	q := t.sb.Delete(t.relation())
	if where := filter.Clause(t.d); where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, done(err)
	}
	t.trace("delete", sql, args)
	tag, err := t.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, done(err)
	}
	return tag.RowsAffected(), done(nil)
}
