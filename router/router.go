// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/mailer"
	"github.com/danielhkuo/ballotbox/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sender mailer.Sender) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accessHandler := handlers.NewAccessHandler(db, cfg, sender)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db)
	authn := handlers.NewAuthenticator(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication (code issue + redeem share one endpoint)
	mux.HandleFunc("POST /access", middleware.WithLogging(accessHandler.Access))

	// Voting (bearer token required)
	mux.HandleFunc("POST /vote", middleware.WithLogging(authn.RequireAuth(voteHandler.CastVote)))

	// Results (public)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.Results))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
