// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the majority judgment poll server.

Voters judge every option of a poll on a scale from 1 to a configured
maximum. Options are ranked by their medians: ties are broken by the next
median outward, and options that still cannot be told apart share a rank.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=polls.db ADMIN_KEY_SALT=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt secret

A .env file in the working directory is loaded first; variables already
set in the environment win.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin keys and voter IDs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_JUDGMENT (-max-judgment): Highest judgment (default: 5)
  - PURGE_CLOSED (-purge-closed): Delete closed polls at start-up (default: true)

# Architecture

  - majority: Normalization, nth-median comparison and dense ranking
  - store: Poll storage and derived poll views
  - handlers: HTTP request handlers (polls, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response types and text rendering
  - auth: Admin keys and voter tokens
  - db: Connections and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
