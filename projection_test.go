// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsList(t *testing.T) {
	assert.Equal(t, []string{"*"}, Fields{}.list(Postgres))
	assert.Equal(t, []string{"*"}, Fields(nil).list(Postgres))

	assert.Equal(t, []string{`"id"`, `"name"`}, Cols("id", "name").list(Postgres))
	assert.Equal(t, []string{"`id`", "`name`"}, Cols("id", "name").list(MySQL))
}

func TestFieldsAlias(t *testing.T) {
	fields := Fields{{Column: "cpus", Alias: "cores"}, {Column: "name"}}
	assert.Equal(t, []string{`"cpus" AS "cores"`, `"name"`}, fields.list(Postgres))
}

func TestOrderClauses(t *testing.T) {
	order := Order{Asc("name"), Desc("id")}
	assert.Equal(t, []string{`"name" ASC`, `"id" DESC`}, order.clauses(Postgres))
	assert.Empty(t, Order{}.clauses(Postgres))
}

func TestOrderDirection(t *testing.T) {
	assert.Equal(t, []string{`"id" ASC`}, Order{{Column: "id", Direction: "asc"}}.clauses(Postgres))
	assert.Equal(t, []string{`"id" ASC`}, Order{{Column: "id"}}.clauses(Postgres))
	assert.Equal(t, []string{`"id" DESC`}, Order{{Column: "id", Direction: "desc"}}.clauses(Postgres))
	assert.Equal(t, []string{`"id" DESC`}, Order{{Column: "id", Direction: "sideways"}}.clauses(Postgres))
}
