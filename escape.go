// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// likeEscaper doubles backslashes and backslash-escapes the LIKE wildcards
// in a single left-to-right pass, so an escape introduced earlier in the
// string is never escaped again.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes s for use inside a LIKE pattern: % and _ become
// literal while wildcards the caller wraps around the result keep their
// meaning. The escaped value still travels as a bound parameter.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// likeText renders a filter value as the text to escape.
func likeText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

// uuidScalar rewrites uuid flavored values into forms squirrel binds as a
// single scalar. Raw [16]uint8 is what pgx hands back for uuid columns;
// without the rewrite squirrel would expand it into a 16 element list.
func uuidScalar(v any) any {
	switch v := v.(type) {
	case [16]uint8:
		return pgtype.UUID{Bytes: v, Valid: true}
	case uuid.UUID:
		return pgtype.UUID{Bytes: v, Valid: true}
	case strfmt.UUID:
		return string(v)
	case *strfmt.UUID:
		if v == nil {
			return nil
		}
		return string(*v)
	}
	return v
}

// isSequence reports whether v is a multi-value filter argument. Byte
// slices count as scalars, they bind as a single bytea value.
func isSequence(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// asSequence coerces v into an element slice, wrapping scalars.
func asSequence(v any) []any {
	if !isSequence(v) {
		return []any{v}
	}
	if elements, ok := v.([]any); ok {
		return elements
	}
	rv := reflect.ValueOf(v)
	elements := make([]any, rv.Len())
	for i := range elements {
		elements[i] = rv.Index(i).Interface()
	}
	return elements
}

// truthy implements the loose boolean coercion the isnull operator uses.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != "" && b != "0"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
