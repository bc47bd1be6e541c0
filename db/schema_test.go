// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{":memory:", ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"},
		{"file:polls.db?cache=shared", "file:polls.db?cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"},
		{"polls.db?_pragma=foreign_keys(0)", "polls.db?_pragma=foreign_keys(0)&_pragma=busy_timeout(5000)&_txlock=immediate"},
		{"polls.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(100)&_txlock=deferred", "polls.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(100)&_txlock=deferred"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpen_SQLiteFileUsesOneConnection(t *testing.T) {
	conn, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "polls.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema run %d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"poll", "poll_option", "vote"} {
		var count int
		err := conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query sqlite_master: %v", err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}
}

func TestCreateSchema_CascadeDelete(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	stmts := []string{
		`INSERT INTO poll (id, description, author) VALUES ('p1', 'desc', 'alice')`,
		`INSERT INTO poll_option (poll_id, number, description) VALUES ('p1', 0, 'A')`,
		`INSERT INTO vote (voter_id, poll_id, number, value) VALUES ('v1', 'p1', 0, 4)`,
		`DELETE FROM poll WHERE id = 'p1'`,
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("exec %q failed: %v", stmt, err)
		}
	}

	var votes int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote`).Scan(&votes); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if votes != 0 {
		t.Errorf("expected votes to cascade, %d left", votes)
	}
}

func TestCreateSchema_RejectsUnknownPolicy(t *testing.T) {
	conn, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	_, err = conn.Exec(`INSERT INTO poll (id, description, author, policy) VALUES ('p1', 'd', 'a', 'abstain')`)
	if err == nil {
		t.Error("expected CHECK constraint to reject unknown policy")
	}
}
