// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - voter: One row per allow-listed email, with the pending verification
    code, its expiry, and the recorded vote (all nullable)
  - token: Bearer tokens mapped to the issuing voter's email

# Portability

The DDL is the lowest common denominator of SQLite and PostgreSQL: TEXT
keys, BIGINT unix-second timestamps, no database-specific column types.
Allow-list seeding lives in the store package and uses
ON CONFLICT (email) DO NOTHING, which both engines support.

# Indexes

  - voter.contestant_voted (tally aggregation)
  - token.email (per-voter token listing/cleanup)
*/
package db
