// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.True(t, IsDuplicateKey(dup))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert failed: %w", dup)))

	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(ErrNoData))
	assert.False(t, IsDuplicateKey(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
}
