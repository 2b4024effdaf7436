// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyVoted = errors.New("already voted")
	ErrCodeMismatch = errors.New("code mismatch")
)

// Every store operation runs under this timeout so no request can block
// indefinitely on the database.
const queryTimeout = 5 * time.Second

// Voters is the durable record of allowed voters: who they are, their
// pending verification code, and their vote state.
type Voters struct {
	db *sql.DB
}

func NewVoters(db *sql.DB) *Voters {
	return &Voters{db: db}
}

// Seed inserts the allow-list, skipping emails that already exist.
// Re-running it never duplicates voters or resets codes and votes.
func (s *Voters) Seed(ctx context.Context, emails []string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	for _, email := range emails {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO voter (email) VALUES ($1)
			ON CONFLICT (email) DO NOTHING
		`, email)
		if err != nil {
			return fmt.Errorf("failed to seed voter %s: %w", email, err)
		}
	}
	return nil
}

// Get returns the voter row for an email, or ErrNotFound.
func (s *Voters) Get(ctx context.Context, email string) (models.Voter, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		v      models.Voter
		code   sql.NullString
		expiry sql.NullInt64
		voted  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT email, verification_code, code_expiry, contestant_voted
		FROM voter WHERE email = $1
	`, email).Scan(&v.Email, &code, &expiry, &voted)

	if err == sql.ErrNoRows {
		return models.Voter{}, ErrNotFound
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}

	if code.Valid {
		v.Code = &code.String
	}
	if expiry.Valid {
		v.CodeExpiry = &expiry.Int64
	}
	if voted.Valid {
		v.ContestantVoted = &voted.String
	}
	return v, nil
}

// SetCode stores a fresh verification code and its expiry, overwriting any
// code that was pending. Only one code is ever live per voter.
func (s *Voters) SetCode(ctx context.Context, email, code string, expiry int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE voter SET verification_code = $1, code_expiry = $2 WHERE email = $3
	`, code, expiry, email)
	if err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeCode nulls a voter's pending code if and only if it still equals
// the submitted code. The WHERE clause makes the check-and-clear a single
// atomic statement, so of N concurrent redeems of one code exactly one can
// match the row. Returns ErrCodeMismatch when the code was already
// consumed, replaced, or the voter is gone.
func (s *Voters) ConsumeCode(ctx context.Context, email, code string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE voter SET verification_code = NULL, code_expiry = NULL
		WHERE email = $1 AND verification_code = $2
	`, email, code)
	if err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrCodeMismatch
	}
	return nil
}

// SetVote records a vote if and only if the voter has not voted yet.
// The WHERE clause makes check-and-set a single atomic statement: of N
// concurrent calls for one voter, exactly one can match the unvoted row.
// Returns ErrAlreadyVoted or ErrNotFound when no row was updated.
func (s *Voters) SetVote(ctx context.Context, email, contestantID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `
		UPDATE voter SET contestant_voted = $1
		WHERE email = $2 AND contestant_voted IS NULL
	`, contestantID, email)
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Zero rows: either the voter vanished or the vote slot was taken.
	var voted sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT contestant_voted FROM voter WHERE email = $1
	`, email).Scan(&voted)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query vote state: %w", err)
	}
	return ErrAlreadyVoted
}

// Tally counts recorded votes grouped by contestant. A single aggregate
// statement, so the snapshot is internally consistent.
func (s *Voters) Tally(ctx context.Context) (models.Tally, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT contestant_voted, COUNT(*)
		FROM voter
		WHERE contestant_voted IS NOT NULL
		GROUP BY contestant_voted
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	defer rows.Close()

	tally := models.Tally{}
	for rows.Next() {
		var contestantID string
		var count int
		if err := rows.Scan(&contestantID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		tally[contestantID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tally rows: %w", err)
	}
	return tally, nil
}
