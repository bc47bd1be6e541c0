// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the majority judgment API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - PollHandler: Poll lifecycle (create, view, add options, close)
  - VotingHandler: Voter registration and vote submission

Handlers are created via constructor functions that accept *store.Polls and Config:

	pollHandler := handlers.NewPollHandler(polls, cfg)

# Poll Lifecycle

Polls are open from creation until an admin closes them:

	POST /polls              → CreatePoll (returns admin_key)
	GET  /polls/{id}         → GetPoll (JSON, or text with ?format=text)
	POST /polls/{id}/options → AddOptions (open polls only)
	POST /polls/{id}/close   → ClosePoll

Admin operations require the X-Admin-Key header.

# Voting Flow

	POST /voters           → RegisterVoter (returns voter_token)
	POST /polls/{id}/votes → Vote (body {"option": 0, "value": 4})

Voting requires the X-Voter-Token header. Judgments run from 1 to the
configured maximum; voting again on the same option replaces the earlier
judgment. Every poll response carries the ranking derived from the votes
stored at that moment.

# Errors

Store errors map to statuses: unknown poll or option is 404, a closed poll
is 409, and anything unexpected is logged and answered with 500.
*/
package handlers
