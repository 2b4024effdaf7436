// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides verification-code and token generation utilities.

# Verification Codes

One-time codes are 6-digit numeric strings drawn uniformly from
[100000, 999999] using crypto/rand:

	code, err := auth.GenerateVerificationCode()

Comparison against a submitted code must go through CodesEqual, which is a
constant-time exact string match:

	if auth.CodesEqual(stored, submitted) { ... }

# Bearer Tokens

Tokens are 32 random bytes (256 bits) hex encoded to 64 characters:

	token, err := auth.GenerateToken()

A token is pure entropy - it is never derived from the voter's identity and
cannot be reversed to it. The store holds the only token → email mapping,
and lookup is by exact match.

ValidTokenFormat cheaply rejects strings that cannot be a minted token
before a database lookup is spent on them:

	if err := auth.ValidTokenFormat(token); err != nil { ... }
*/
package auth
