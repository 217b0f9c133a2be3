// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNoTable        = errors.New("no table name configured")
	ErrNoPrimaryKey   = errors.New("no primary key configured")
	ErrNoData         = errors.New("no data provided")
	ErrConflictPolicy = errors.New("replace and ignore are mutually exclusive")
	ErrInvalidMarker  = errors.New("invalid marker")
)

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	var pe *pgconn.PgError
	return errors.As(err, &pe) && pe.Code == pgerrcode.UniqueViolation
}
