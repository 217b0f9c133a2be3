// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func TestDelete(t *testing.T) {
	dbMock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	defer dbMock.Close()

	dbMock.ExpectExec(`DELETE FROM "machine" WHERE "status" = $1`).
		WithArgs("DELETED").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	count, err := newTestTable(t, dbMock).Delete(context.Background(), Filter{"status": "DELETED"})
	assert.Nil(t, err)
	assert.Equal(t, int64(2), count)
	if err = dbMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestDeleteAll(t *testing.T) {
	dbMock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	defer dbMock.Close()

	// an empty filter wipes the whole table
	dbMock.ExpectExec(`DELETE FROM "machine"`).
		WillReturnResult(pgxmock.NewResult("DELETE", 10))

	count, err := newTestTable(t, dbMock).Delete(context.Background(), nil)
	assert.Nil(t, err)
	assert.Equal(t, int64(10), count)
	if err = dbMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
