// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - AccessRequest: email, optional code (one type serves both /access phases)
  - VoteRequest: contestant_id

# Response Types

Types for JSON responses:

  - MessageResponse: message
  - TokenResponse: token
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Voter: one allow-list entry with its pending code and recorded vote
  - Tally: contestant ID → vote count

Voter's code, expiry, and vote fields are pointers because each is absent
until the corresponding step of the flow has happened. The code and expiry
are secrets and are never serialized.
*/
package models
