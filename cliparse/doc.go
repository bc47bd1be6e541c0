// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite file (required)
  - DatabaseType: sqlite (default) or postgres
  - AdminKeySalt: Secret for admin key HMAC (required)
  - MaxJudgment: Highest judgment a voter may give (default: 5)
  - PurgeClosed: Delete closed polls on start-up (default: true)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-admin-salt     Admin key salt
	-max-judgment   Highest judgment
	-purge-closed   Purge closed polls on start-up

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt
	MAX_JUDGMENT   → -max-judgment
	PURGE_CLOSED   → -purge-closed

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded first; variables already set in the
environment are not overwritten.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY_SALT must be provided
*/
package cliparse
