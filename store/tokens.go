// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tokens persists the token → email mapping. A voter may hold several live
// tokens (one per login); each maps back to exactly one email.
type Tokens struct {
	db *sql.DB
}

func NewTokens(db *sql.DB) *Tokens {
	return &Tokens{db: db}
}

// Insert stores a freshly minted token. The primary key constraint is the
// only collision guard; at 256 bits of entropy that is enough.
func (s *Tokens) Insert(ctx context.Context, token, email string, createdAt int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO token (token, email, created_at) VALUES ($1, $2, $3)
	`, token, email, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}
	return nil
}

// Lookup resolves a token to the email it was minted for, by exact match.
// Returns ErrNotFound for unknown tokens.
func (s *Tokens) Lookup(ctx context.Context, token string) (email string, createdAt int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err = s.db.QueryRowContext(ctx, `
		SELECT email, created_at FROM token WHERE token = $1
	`, token).Scan(&email, &createdAt)
	if err == sql.ErrNoRows {
		return "", 0, ErrNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to query token: %w", err)
	}
	return email, createdAt, nil
}

// Delete revokes a token. Used for lazy cleanup of expired tokens; deleting
// an absent token is not an error.
func (s *Tokens) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `DELETE FROM token WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
