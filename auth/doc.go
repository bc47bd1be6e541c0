// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(pollID, salt)
	err := auth.ValidateAdminKey(pollID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same poll ID and salt always produce the same key. This allows validation
without storing the key in the database. Adding options and closing a poll
require it.

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()
	err = auth.ValidateVoterToken(token)

A voter sends the same token with every vote; a later vote on the same
option replaces the earlier one.

# Voter IDs

Votes are stored under an HMAC of the token rather than the token itself:

	voterID := auth.VoterID(token, salt)
*/
package auth
