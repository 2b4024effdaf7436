// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballot Box API server.

Ballot Box authenticates voters by one-time email codes, issues bearer
tokens, records at most one vote per verified identity, and exposes the
aggregate tally.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=voting.db ALLOWED_EMAILS=alice@x.com,bob@x.com go run .

Or with flags:

	go run . -p 3000 -d voting.db

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ALLOWED_EMAILS: comma-separated voter allow-list

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - CONTESTANTS: whitelist of votable contestant IDs
  - CODE_TTL_SECONDS / TOKEN_TTL_SECONDS: credential lifetimes
  - SENDGRID_API_KEY, FROM_EMAIL, FROM_NAME, EMAIL_TEMPLATE: email dispatch
    (without an API key, codes are logged instead of emailed)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (access, vote, results) + token auth
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Code and token generation
  - store: Voter and token persistence with the atomic vote write
  - mailer: Email sender capability (SendGrid or log fallback)
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
