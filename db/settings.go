// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

// Package db bootstraps pgx connection pools for quarry applications:
// connection settings as command line options, statement tracing through
// logrus and pool statistics exported to prometheus.
package db

import (
	"context"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
)

// Settings holds the database options of an application, ready to be
// embedded into a go-flags option group.
type Settings struct {
	Connection string `long:"database-connection" ini-name:"connection" default:"postgresql://localhost/quarry" description:"Connection string to use to connect to the database."`
	Trace      bool   `long:"database-trace" ini-name:"trace" description:"Log every database statement."`
}

// ParseFlags fills s from command line arguments and, when --config-file
// names an ini file, from its [database] section. File values win over
// arguments. Arguments not consumed here are returned so applications can
// run their own parser on the remainder.
func ParseFlags(s *Settings, args []string) ([]string, error) {
	var root struct {
		ConfigFile string    `long:"config-file" description:"Use config file"`
		Database   *Settings `group:"database"`
	}
	root.Database = s

	parser := flags.NewParser(&root, flags.IgnoreUnknown)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if root.ConfigFile != "" {
		ini := flags.NewIniParser(parser)
		if err := ini.ParseFile(root.ConfigFile); err != nil {
			return nil, err
		}
	}
	return rest, nil
}

// Connect opens a connection pool for the given settings.
func Connect(ctx context.Context, s Settings) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(s.Connection)
	if err != nil {
		return nil, err
	}
	connConfig.ConnConfig.Tracer = Tracer(s.Trace)
	return pgxpool.NewWithConfig(ctx, connConfig)
}

// InstrumentPool registers a prometheus collector exposing the pool's
// connection statistics, labeled with the database name.
func InstrumentPool(pool *pgxpool.Pool) {
	collector := pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": pool.Config().ConnConfig.Database})
	prometheus.MustRegister(collector)
}
