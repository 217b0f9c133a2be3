// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jmoiron/sqlx/reflectx"
)

// rowMapper resolves struct fields to column names the same way the row
// scanner does: a db tag wins, otherwise the snake_cased field name.
var rowMapper = reflectx.NewMapperFunc("db", strcase.ToSnake)

// StructRow converts a struct or struct pointer into a Row suitable for
// Insert and Update, using db tags or snake_cased field names as columns.
// Embedded structs are flattened, fields tagged "-" are skipped.
func StructRow(v any) (Row, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot derive a row from %T", v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot derive a row from %T", v)
	}

	row := Row{}
	for name, fi := range rowMapper.TypeMap(rv.Type()).Names {
		if strings.Contains(name, ".") || fi.Embedded {
			continue
		}
		row[name] = reflectx.FieldByIndexesReadOnly(rv, fi.Index).Interface()
	}
	return row, nil
}
