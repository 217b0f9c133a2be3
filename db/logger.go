// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	logrus "github.com/jackc/pgx-logrus"
	"github.com/jackc/pgx/v5/tracelog"
	log "github.com/sirupsen/logrus"
)

// Tracer adapts the standard logrus logger into a pgx query tracer. With
// trace enabled every statement is logged, otherwise only errors.
func Tracer(trace bool) *tracelog.TraceLog {
	logLevel := tracelog.LogLevelError
	if trace {
		logLevel = tracelog.LogLevelDebug
	}
	return &tracelog.TraceLog{
		Logger:   logrus.NewLogger(log.StandardLogger()),
		LogLevel: logLevel,
	}
}
