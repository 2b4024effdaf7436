package models

// Request types

// AccessRequest drives both phases of POST /access: with Code empty it
// requests a fresh verification code, with Code set it redeems the code
// for a bearer token.
type AccessRequest struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}

type VoteRequest struct {
	ContestantID string `json:"contestant_id"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Domain types

// Voter is one row of the allow-list. Code, CodeExpiry and ContestantVoted
// stay nil until the corresponding step of the flow has happened.
type Voter struct {
	Email           string  `json:"email"`
	Code            *string `json:"-"` // Never expose in JSON
	CodeExpiry      *int64  `json:"-"` // Unix seconds; never expose in JSON
	ContestantVoted *string `json:"contestant_voted,omitempty"`
}

// Tally maps contestant IDs to vote counts.
type Tally map[string]int

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
