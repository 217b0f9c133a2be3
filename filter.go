// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"maps"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	log "github.com/sirupsen/logrus"
)

// Filter holds query conditions keyed by column name, optionally suffixed
// with a comparison operator: "status" matches equality, "cpus__gte"
// matches >=, "name__like" matches a substring. All conditions are
// combined with AND. Values are always bound as parameters.
type Filter map[string]any

// Operator suffixes recognized after the last "__" in a filter key.
const (
	opGt         = "gt"
	opGte        = "gte"
	opLt         = "lt"
	opLte        = "lte"
	opNe         = "ne"
	opLike       = "like"
	opNotLike    = "notlike"
	opStartsWith = "startswith"
	opEndsWith   = "endswith"
	opBetween    = "between"
	opIn         = "in"
	opNotIn      = "notin"
	opIsNull     = "isnull"
)

// Clause renders the filter as a condition usable in a WHERE clause, or
// nil when the filter contains no usable entries. Keys are processed in
// sorted order so the emitted SQL is stable.
func (f Filter) Clause(d Dialect) sq.Sqlizer {
	parts := f.clauses(d)
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	}
	return andJoin(parts)
}

func (f Filter) clauses(d Dialect) []sq.Sqlizer {
	parts := make([]sq.Sqlizer, 0, len(f))
	for _, key := range slices.Sorted(maps.Keys(f)) {
		column, operator := splitKey(key)
		if column == "" {
			log.WithField("key", key).Debug("filter: empty column name, condition skipped")
			continue
		}
		value := uuidScalar(f[key])
		qcol := d.QuoteIdentifier(column)

		switch operator {
		case "":
			if isSequence(value) {
				parts = append(parts, sq.Eq{qcol: asSequence(value)})
			} else {
				parts = append(parts, sq.Eq{qcol: value})
			}
		case opGt:
			parts = append(parts, sq.Gt{qcol: value})
		case opGte:
			parts = append(parts, sq.GtOrEq{qcol: value})
		case opLt:
			parts = append(parts, sq.Lt{qcol: value})
		case opLte:
			parts = append(parts, sq.LtOrEq{qcol: value})
		case opNe:
			parts = append(parts, sq.NotEq{qcol: value})
		case opLike:
			for _, element := range asSequence(value) {
				parts = append(parts, sq.Like{qcol: "%" + EscapeLike(likeText(element)) + "%"})
			}
		case opNotLike:
			for _, element := range asSequence(value) {
				parts = append(parts, sq.NotLike{qcol: "%" + EscapeLike(likeText(element)) + "%"})
			}
		case opStartsWith:
			parts = append(parts, sq.Like{qcol: EscapeLike(likeText(value)) + "%"})
		case opEndsWith:
			parts = append(parts, sq.Like{qcol: "%" + EscapeLike(likeText(value))})
		case opBetween:
			bounds := asSequence(value)
			if len(bounds) < 2 {
				log.WithField("key", key).Debug("filter: between needs two bounds, condition skipped")
				continue
			}
			parts = append(parts, sq.Expr("("+qcol+" BETWEEN ? AND ?)", bounds[0], bounds[1]))
		case opIn:
			parts = append(parts, sq.Eq{qcol: asSequence(value)})
		case opNotIn:
			parts = append(parts, sq.NotEq{qcol: asSequence(value)})
		case opIsNull:
			if truthy(value) {
				parts = append(parts, sq.Eq{qcol: nil})
			} else {
				parts = append(parts, sq.NotEq{qcol: nil})
			}
		default:
			log.WithField("key", key).Debug("filter: unknown operator, condition skipped")
		}
	}
	return parts
}

// splitKey splits a filter key into column and operator at the last "__",
// so column names containing "__" still resolve as long as their final
// segment is a recognized operator.
func splitKey(key string) (column, operator string) {
	i := strings.LastIndex(key, "__")
	if i < 0 {
		return key, ""
	}
	return key[:i], key[i+2:]
}

// andJoin combines conditions with AND without wrapping the result in
// parentheses, matching how chained Where calls render.
type andJoin []sq.Sqlizer

func (a andJoin) ToSql() (string, []any, error) {
	var sb strings.Builder
	var args []any
	for i, part := range a {
		sql, partArgs, err := part.ToSql()
		if err != nil {
			return "", nil, err
		}
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(sql)
		args = append(args, partArgs...)
	}
	return sb.String(), args, nil
}
