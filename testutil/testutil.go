// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/danielhkuo/majority/auth"
	"github.com/danielhkuo/majority/cliparse"
	"github.com/danielhkuo/majority/db"
	"github.com/danielhkuo/majority/majority"
	"github.com/danielhkuo/majority/store"
)

// TestDBURLEnv names the variable that points tests at a Postgres database.
// Without it every test gets its own in-memory SQLite database.
const TestDBURLEnv = "TEST_DATABASE_URL"

// SetupTestDB opens a fresh test database with the full schema and returns
// it together with its driver name. The connection is closed on cleanup.
func SetupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	driver, dsn := db.DriverSQLite, ":memory:"
	if url := os.Getenv(TestDBURLEnv); url != "" {
		driver, dsn = db.DriverPostgres, url
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Postgres is shared between runs, so start from empty tables
	if driver == db.DriverPostgres {
		if err := db.DropSchema(conn); err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn, driver
}

// NewTestStore returns a poll store over a fresh test database
func NewTestStore(t *testing.T) *store.Polls {
	t.Helper()
	conn, driver := SetupTestDB(t)
	return store.New(conn, driver, nil)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.DriverSQLite,
		AdminKeySalt: "test-admin-salt",
		MaxJudgment:  5,
	}
}

// CreateTestPoll creates an open poll with the given options and returns
// its ID and admin key
func CreateTestPoll(t *testing.T, polls *store.Polls, cfg cliparse.Config, policy majority.Policy, options ...string) (pollID, adminKey string) {
	t.Helper()

	pollID, err := polls.AddPoll(context.Background(), store.NewPoll{
		Description: "Test Poll",
		Author:      "TestUser",
		Options:     options,
		Policy:      policy,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)
}

// CastTestBallots records one ballot per voter. ballots[v][o] is voter v's
// judgment of option o; a zero entry means the voter skipped that option.
// Voters are named voter-0, voter-1, ...
func CastTestBallots(t *testing.T, polls *store.Polls, pollID string, ballots [][]int) {
	t.Helper()

	for v, ballot := range ballots {
		for o, value := range ballot {
			if value == majority.Sentinel {
				continue
			}
			if _, err := polls.Vote(context.Background(), pollID, o, TestVoterID(v), value); err != nil {
				t.Fatalf("Failed to record vote of voter %d on option %d: %v", v, o, err)
			}
		}
	}
}

// TestVoterID is the voter identifier CastTestBallots uses for voter v
func TestVoterID(v int) string {
	return fmt.Sprintf("voter-%d", v)
}

// NewTestVoterToken returns a fresh voter token
func NewTestVoterToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateVoterToken()
	if err != nil {
		t.Fatalf("Failed to generate voter token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
