// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Ballot Box API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, sender)

# Endpoints

Health:

	GET /health

Authentication (public):

	POST /access - request a verification code, or redeem one for a token

Voting (requires Authorization: Bearer token):

	POST /vote - record the caller's single vote

Results (public):

	GET /results - per-contestant tally

# Handler Initialization

The router creates handler instances with dependency injection:

	accessHandler := handlers.NewAccessHandler(db, cfg, sender)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db)
	authn := handlers.NewAuthenticator(db, cfg)

The vote route is wrapped in authn.RequireAuth so token resolution happens
before any voting logic runs.
*/
package router
