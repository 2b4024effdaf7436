// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/store"
)

type ctxKey int

const emailKey ctxKey = iota

// VoterEmail returns the authenticated voter's email placed in the context
// by RequireAuth.
func VoterEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// Authenticator resolves bearer tokens to voter identities.
type Authenticator struct {
	tokens *store.Tokens
	cfg    cliparse.Config
}

func NewAuthenticator(db *sql.DB, cfg cliparse.Config) *Authenticator {
	return &Authenticator{tokens: store.NewTokens(db), cfg: cfg}
}

// RequireAuth rejects the whole request before any business logic runs
// unless the bearer token resolves to a voter. On success the voter's
// email is available via VoterEmail.
func (a *Authenticator) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.BearerToken(r)
		if token == "" {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
			return
		}
		if err := auth.ValidTokenFormat(token); err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		email, issuedAt, err := a.tokens.Lookup(r.Context(), token)
		if err == store.ErrNotFound {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if err != nil {
			slog.Error("failed to look up token", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		// TokenTTL == 0 means tokens never expire. Expired tokens are
		// deleted on first rejected use, which keeps the table from
		// accumulating dead credentials.
		if a.cfg.TokenTTL > 0 && time.Now().Unix() >= issuedAt+int64(a.cfg.TokenTTL.Seconds()) {
			if delErr := a.tokens.Delete(r.Context(), token); delErr != nil {
				slog.Warn("failed to delete expired token", "error", delErr)
			}
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Token expired")
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, email)
		next(w, r.WithContext(ctx))
	}
}
