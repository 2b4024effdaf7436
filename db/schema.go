// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are stored as unix seconds (BIGINT) so the same DDL works on
// both SQLite and PostgreSQL.
const schema = `
-- Voters (the allow-list, plus per-voter auth and vote state)
CREATE TABLE IF NOT EXISTS voter (
    email TEXT PRIMARY KEY,
    verification_code TEXT,
    code_expiry BIGINT,
    contestant_voted TEXT
);

CREATE INDEX IF NOT EXISTS idx_voter_contestant ON voter(contestant_voted);

-- Tokens (one row per successful verification; a voter may hold several)
CREATE TABLE IF NOT EXISTS token (
    token TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_token_email ON token(email);
`
