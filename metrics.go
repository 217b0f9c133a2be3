// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package quarry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "quarry_query_duration_seconds",
			Help: "Duration of database operations.",
		},
		[]string{"table", "operation"},
	)
	queryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quarry_query_errors_total",
			Help: "Number of failed database operations.",
		},
		[]string{"table", "operation"},
	)
)

// RegisterMetrics registers the query metrics with the default prometheus
// registerer. Call it once at startup; operations record metrics either
// way, registration only makes them visible.
func RegisterMetrics() {
	prometheus.DefaultRegisterer.MustRegister(queryDuration, queryErrors)
}

func (t *Table) instrument(op string) func(error) error {
	start := time.Now()
	return func(err error) error {
		queryDuration.WithLabelValues(t.cfg.Table, op).Observe(time.Since(start).Seconds())
		if err != nil {
			queryErrors.WithLabelValues(t.cfg.Table, op).Inc()
		}
		return err
	}
}
