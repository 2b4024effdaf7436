// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballot Box API.

# Handler Types

Each handler is a struct built from *sql.DB and Config:

	accessHandler := handlers.NewAccessHandler(db, cfg, sender)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db)
	authn := handlers.NewAuthenticator(db, cfg)

# Authentication Flow

POST /access serves both phases:

	{"email": "alice@x.com"}                  → code issued and emailed
	{"email": "alice@x.com", "code": "123456"} → bearer token minted

Emails outside the allow-list get 403 on both phases. A wrong, stale, or
already-used code gets 401. Codes are single use: a redeem consumes the
stored code atomically, so concurrent redeems of one code mint one token.

# Voting Flow

POST /vote requires Authorization: Bearer <token> and goes through
Authenticator.RequireAuth, which resolves the token to an email before the
handler runs. The at-most-one-vote invariant lives in store.SetVote; the
handler maps its outcomes:

	success          → 200
	unknown voter    → 404 (defensive; row vanished after auth)
	already voted    → 400
	unknown contestant → 400 (only when CONTESTANTS is configured)

# Results

GET /results is public and returns {"contestantID": count, ...}.
*/
package handlers
