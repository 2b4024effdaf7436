// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/mailer"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

const emailSubject = "Your Verification Code"

type AccessHandler struct {
	voters *store.Voters
	tokens *store.Tokens
	cfg    cliparse.Config
	sender mailer.Sender
}

func NewAccessHandler(db *sql.DB, cfg cliparse.Config, sender mailer.Sender) *AccessHandler {
	return &AccessHandler{
		voters: store.NewVoters(db),
		tokens: store.NewTokens(db),
		cfg:    cfg,
		sender: sender,
	}
}

// Access handles POST /access, the single entry point for authentication.
// Without a code in the body it issues and emails a fresh verification
// code; with a code it redeems it for a bearer token.
func (h *AccessHandler) Access(w http.ResponseWriter, r *http.Request) {
	var req models.AccessRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	// Allow-list gate. Emails match case-sensitively; nobody outside the
	// configured electorate gets a code or a row.
	voter, err := h.voters.Get(r.Context(), req.Email)
	if err == store.ErrNotFound {
		middleware.ErrorResponse(w, http.StatusForbidden, "Email not allowed")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Code == "" {
		h.issueCode(w, r, req.Email)
		return
	}
	h.redeemCode(w, r, voter, req.Code)
}

// issueCode generates a code, persists it, then dispatches the email.
// A previously pending code is overwritten, never appended to. The
// response does not reveal whether a code was already pending.
func (h *AccessHandler) issueCode(w http.ResponseWriter, r *http.Request, email string) {
	code, err := auth.GenerateVerificationCode()
	if err != nil {
		slog.Error("failed to generate verification code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue code")
		return
	}

	expiry := time.Now().Add(h.cfg.CodeTTL).Unix()
	err = h.voters.SetCode(r.Context(), email, code, expiry)
	if err == store.ErrNotFound {
		// The voter row vanished between the allow-list check and here.
		middleware.ErrorResponse(w, http.StatusForbidden, "Email not allowed")
		return
	}
	if err != nil {
		slog.Error("failed to persist verification code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	htmlBody, err := mailer.RenderCodeEmail(h.cfg.TemplatePath, code, int(h.cfg.CodeTTL.Minutes()))
	if err != nil {
		slog.Error("failed to render verification email", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render verification email")
		return
	}

	plainBody := fmt.Sprintf("Your verification code is %s", code)
	if err := h.sender.Send(r.Context(), email, emailSubject, plainBody, htmlBody); err != nil {
		// The code is already persisted and valid. Report the transport
		// failure honestly; the voter can retry or request a fresh code.
		slog.Error("failed to send verification email", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Verification email could not be sent")
		return
	}

	slog.Info("verification code issued", "email", email)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Verification code sent",
	})
}

// redeemCode checks the submitted code and mints a bearer token. Codes are
// single use: the conditional consume clears the stored code and the token
// is only minted when this request was the one that cleared it, so a
// captured code cannot mint a second token.
func (h *AccessHandler) redeemCode(w http.ResponseWriter, r *http.Request, voter models.Voter, submitted string) {
	now := time.Now().Unix()
	valid := voter.Code != nil &&
		voter.CodeExpiry != nil &&
		auth.CodesEqual(*voter.Code, submitted) &&
		now < *voter.CodeExpiry

	if !valid {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	}

	err := h.voters.ConsumeCode(r.Context(), voter.Email, submitted)
	if err == store.ErrCodeMismatch {
		// The code was consumed or replaced after our snapshot was read.
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	}
	if err != nil {
		slog.Error("failed to consume verification code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.GenerateToken()
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	if err := h.tokens.Insert(r.Context(), token, voter.Email, now); err != nil {
		slog.Error("failed to persist token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("token minted", "email", voter.Email)

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{Token: token})
}
