// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreatePollRequest: description, author, options, policy
  - AddOptionsRequest: options
  - VoteRequest: option, value

# Response Types

  - CreatePollResponse: poll_id, admin_key
  - RegisterVoterResponse: voter_token
  - ErrorResponse: error, message

# Domain Types

  - Poll: the ranked view of a poll (options, normalized votes, ranking)
  - Option: option index and description

Poll implements fmt.Stringer for a plain-text rendering:

	(poll from alice)
	Where shall we eat tomorrow?
	open, reject policy, 6 voters

	(1st) Mama's Pizza
	2 3 3 4 5 5
*/
package models
