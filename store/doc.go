// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store wraps all database access behind two small repositories.

# Voters

Voters is the identity store: the allow-list, each voter's pending
verification code, and their vote state.

	voters := store.NewVoters(db)
	err := voters.Seed(ctx, cfg.AllowedEmails)   // idempotent
	v, err := voters.Get(ctx, email)             // ErrNotFound
	err = voters.SetCode(ctx, email, code, exp)  // overwrite semantics
	err = voters.SetVote(ctx, email, contestant) // ErrAlreadyVoted / ErrNotFound
	tally, err := voters.Tally(ctx)

SetVote is the one operation that needs transactional isolation. It is a
single conditional UPDATE:

	UPDATE voter SET contestant_voted = $1
	WHERE email = $2 AND contestant_voted IS NULL

so two concurrent casts for the same voter can never both succeed - a vote,
once set, is immutable.

# Tokens

Tokens maps opaque bearer tokens to the voter they were minted for:

	tokens := store.NewTokens(db)
	err := tokens.Insert(ctx, token, email, now)
	email, issuedAt, err := tokens.Lookup(ctx, token)
	err = tokens.Delete(ctx, token)

# Timeouts

Every operation wraps its context with a bounded timeout; no request can
block indefinitely on the database. Connections come from the *sql.DB pool
per operation and are always released.
*/
package store
