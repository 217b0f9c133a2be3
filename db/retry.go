// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	log "github.com/sirupsen/logrus"
)

const (
	retryDelay = 250 * time.Millisecond
	maxRetries = 2
)

// Retry runs fn, retrying transient database failures a fixed number of
// times with a constant delay. Permanent errors return immediately.
func Retry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(maxRetries, retry.NewConstant(retryDelay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && transient(err) {
			log.WithError(err).Warn("db.Retry")
			return retry.RetryableError(err)
		}
		return err
	})
}

// transient reports whether err is worth retrying. Constraint violations
// never are, connection and transaction level failures are.
func transient(err error) bool {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		if pgerrcode.IsIntegrityConstraintViolation(pe.Code) {
			return false
		}
		return pgerrcode.IsConnectionException(pe.Code) ||
			pgerrcode.IsTransactionRollback(pe.Code) ||
			pgerrcode.IsOperatorIntervention(pe.Code)
	}
	return pgconn.SafeToRetry(err)
}
