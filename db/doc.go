// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open accepts "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite, pure Go):

	conn, err := db.Open(db.DriverSQLite, "polls.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is written to run unchanged on both drivers.

# Tables

  - poll: description, author, default-vote policy, open flag
  - poll_option: options numbered from 0 within a poll
  - vote: one judgment per (voter, poll, option)

# Relationships

	poll 1──* poll_option
	poll_option 1──* vote

All foreign keys use ON DELETE CASCADE, so deleting a closed poll
removes its options and votes.
*/
package db
