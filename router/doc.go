// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the majority judgment API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(polls, cfg, httpMetrics, registry)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Poll management (options and close require X-Admin-Key):

	POST /polls              - Create poll
	GET  /polls/{id}         - Poll with ranking (?format=text for plain text)
	POST /polls/{id}/options - Add options
	POST /polls/{id}/close   - Stop accepting votes

Voting (requires X-Voter-Token):

	POST /voters           - Issue a voter token
	POST /polls/{id}/votes - Judge one option

Every poll route is wrapped with request logging and, when metrics are
given, request counting labelled by route pattern.
*/
package router
