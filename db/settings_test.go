// SPDX-FileCopyrightText: Copyright 2026 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	var s Settings
	rest, err := ParseFlags(&s, []string{"--database-connection", "postgres://cli/db", "--database-trace", "--listen", ":8080"})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "postgres://cli/db", s.Connection)
	assert.True(t, s.Trace)
	assert.Equal(t, []string{"--listen", ":8080"}, rest)
}

func TestParseFlagsDefaults(t *testing.T) {
	var s Settings
	_, err := ParseFlags(&s, nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "postgresql://localhost/quarry", s.Connection)
	assert.False(t, s.Trace)
}

func TestParseFlagsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarry.ini")
	ini := "[database]\nconnection = postgres://ini/db\ntrace = true\n"
	if err := os.WriteFile(path, []byte(ini), 0o600); err != nil {
		t.Fatal(err)
	}

	var s Settings
	_, err := ParseFlags(&s, []string{"--config-file", path, "--database-connection", "postgres://cli/db"})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "postgres://ini/db", s.Connection)
	assert.True(t, s.Trace)
}

func TestConnectInvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), Settings{Connection: "://not-a-url"})
	assert.Error(t, err)
}

func TestConnectLazy(t *testing.T) {
	// the pool connects on first use, so a bogus port is fine here
	pool, err := Connect(context.Background(), Settings{Connection: "postgres://localhost:54329/unused"})
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()
	assert.Equal(t, "unused", pool.Config().ConnConfig.Database)
}

func TestTracerLevels(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, Tracer(true).LogLevel)
	assert.Equal(t, tracelog.LogLevelError, Tracer(false).LogLevel)
}
