// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
// SQLite connections get foreign keys enabled so deletes cascade, and the
// pool is pinned to one connection so writers queue instead of failing
// with SQLITE_BUSY.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is also a separate database
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// sqliteParams are added to a SQLite DSN unless it already sets them.
// Immediate transactions take the write lock at BEGIN, so a second process
// writing the same file waits out busy_timeout instead of deadlocking.
var sqliteParams = []struct{ name, param string }{
	{"foreign_keys", "_pragma=foreign_keys(1)"},
	{"busy_timeout", "_pragma=busy_timeout(5000)"},
	{"_txlock", "_txlock=immediate"},
}

func sqliteDSN(dsn string) string {
	for _, p := range sqliteParams {
		if strings.Contains(dsn, p.name) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.param
	}
	return dsn
}

// SnapshotTxOptions returns the transaction options for a consistent
// multi-statement read. SQLite transactions are already serializable.
func SnapshotTxOptions(driver string) *sql.TxOptions {
	if driver == DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// DropSchema removes all tables. Used by tests to start from a clean database.
func DropSchema(db *sql.DB) error {
	for _, table := range []string{"vote", "poll_option", "poll"} {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

// Statements are split on ';' and must stay portable between
// PostgreSQL and SQLite.
const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    author TEXT NOT NULL,
    policy TEXT NOT NULL DEFAULT 'reject' CHECK (policy IN ('reject', 'ignore')),
    is_open BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_is_open ON poll(is_open);

-- Options, numbered from 0 within a poll
CREATE TABLE IF NOT EXISTS poll_option (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    number INTEGER NOT NULL CHECK (number >= 0),
    description TEXT NOT NULL,
    PRIMARY KEY (poll_id, number)
);

-- Votes, one per voter per option
CREATE TABLE IF NOT EXISTS vote (
    voter_id TEXT NOT NULL,
    poll_id TEXT NOT NULL,
    number INTEGER NOT NULL,
    value INTEGER NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (voter_id, poll_id, number),
    FOREIGN KEY (poll_id, number) REFERENCES poll_option(poll_id, number) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
`
