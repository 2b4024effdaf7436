// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"slices"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

type VoteHandler struct {
	voters *store.Voters
	cfg    cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{voters: store.NewVoters(db), cfg: cfg}
}

// CastVote handles POST /vote. Requires a prior-resolved identity from
// RequireAuth. The single-vote invariant is enforced inside the store's
// atomic SetVote; this handler only maps outcomes to HTTP statuses.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	email, ok := VoterEmail(r.Context())
	if !ok {
		// Route wired without RequireAuth; treat as unauthenticated.
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ContestantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contestant_id is required")
		return
	}

	// With no configured whitelist any contestant ID is accepted.
	if len(h.cfg.Contestants) > 0 && !slices.Contains(h.cfg.Contestants, req.ContestantID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown contestant")
		return
	}

	err := h.voters.SetVote(r.Context(), email, req.ContestantID)
	switch err {
	case nil:
		// fall through to success
	case store.ErrNotFound:
		// The voter authenticated but their row is gone. Should not
		// happen with allow-list seeding; handled rather than assumed.
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	case store.ErrAlreadyVoted:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Voter has already voted")
		return
	default:
		slog.Error("failed to record vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote recorded", "email", email, "contestant_id", req.ContestantID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Vote recorded",
	})
}
