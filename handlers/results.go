// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/store"
)

type ResultsHandler struct {
	voters *store.Voters
}

func NewResultsHandler(db *sql.DB) *ResultsHandler {
	return &ResultsHandler{voters: store.NewVoters(db)}
}

// Results handles GET /results: the per-contestant tally as a JSON object.
// Read-only and public; intended for small electorates, no pagination.
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	tally, err := h.voters.Tally(r.Context())
	if err != nil {
		slog.Error("failed to tally votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}
