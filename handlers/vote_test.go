package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	testutil.SeedTestVoters(t, db, cfg.AllowedEmails...)

	voteHandler := NewVoteHandler(db, cfg)
	authn := NewAuthenticator(db, cfg)
	protected := authn.RequireAuth(voteHandler.CastVote)

	aliceToken := testutil.MintTestToken(t, db, "alice@x.com")
	bobToken := testutil.MintTestToken(t, db, "bob@x.com")

	tests := []struct {
		name           string
		token          string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "missing token",
			token:          "",
			requestBody:    models.VoteRequest{ContestantID: "7"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			token:          "not-a-token",
			requestBody:    models.VoteRequest{ContestantID: "7"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "well-formed but unknown token",
			token:          "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
			requestBody:    models.VoteRequest{ContestantID: "7"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing contestant",
			token:          aliceToken,
			requestBody:    models.VoteRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "first vote succeeds",
			token:          aliceToken,
			requestBody:    models.VoteRequest{ContestantID: "7"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "second vote rejected",
			token:          aliceToken,
			requestBody:    models.VoteRequest{ContestantID: "3"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "other voter still unvoted",
			token:          bobToken,
			requestBody:    models.VoteRequest{ContestantID: "3"},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			req := testutil.MakeRequest("POST", "/vote", tt.requestBody, headers)
			w := httptest.NewRecorder()
			protected(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// Alice's recorded vote is her first choice, untouched by the retry
	var recorded string
	if err := db.QueryRow(`SELECT contestant_voted FROM voter WHERE email = $1`, "alice@x.com").Scan(&recorded); err != nil {
		t.Fatalf("Failed to read recorded vote: %v", err)
	}
	if recorded != "7" {
		t.Errorf("Expected recorded vote 7, got %s", recorded)
	}
}

func TestCastVote_VoterRowGone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	testutil.SeedTestVoters(t, db, "alice@x.com")

	voteHandler := NewVoteHandler(db, cfg)
	authn := NewAuthenticator(db, cfg)
	protected := authn.RequireAuth(voteHandler.CastVote)

	token := testutil.MintTestToken(t, db, "alice@x.com")

	// Simulate store corruption: the row vanishes after the token was minted
	if _, err := db.Exec(`DELETE FROM voter WHERE email = $1`, "alice@x.com"); err != nil {
		t.Fatalf("Failed to delete voter: %v", err)
	}

	req := testutil.MakeRequest("POST", "/vote", models.VoteRequest{ContestantID: "7"},
		map[string]string{"Authorization": "Bearer " + token})
	w := httptest.NewRecorder()
	protected(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCastVote_ContestantWhitelist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.Contestants = []string{"7", "3"}
	testutil.SeedTestVoters(t, db, cfg.AllowedEmails...)

	voteHandler := NewVoteHandler(db, cfg)
	authn := NewAuthenticator(db, cfg)
	protected := authn.RequireAuth(voteHandler.CastVote)

	token := testutil.MintTestToken(t, db, "alice@x.com")
	headers := map[string]string{"Authorization": "Bearer " + token}

	// Outside the whitelist: rejected, vote slot untouched
	w := httptest.NewRecorder()
	protected(w, testutil.MakeRequest("POST", "/vote", models.VoteRequest{ContestantID: "99"}, headers))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var voted *string
	if err := db.QueryRow(`SELECT contestant_voted FROM voter WHERE email = $1`, "alice@x.com").Scan(&voted); err != nil {
		t.Fatalf("Failed to read vote state: %v", err)
	}
	if voted != nil {
		t.Errorf("Rejected vote was recorded: %v", *voted)
	}

	// Inside the whitelist: accepted
	w = httptest.NewRecorder()
	protected(w, testutil.MakeRequest("POST", "/vote", models.VoteRequest{ContestantID: "7"}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestRequireAuth_TokenExpiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	cfg.TokenTTL = time.Hour
	testutil.SeedTestVoters(t, db, "alice@x.com")

	voteHandler := NewVoteHandler(db, cfg)
	authn := NewAuthenticator(db, cfg)
	protected := authn.RequireAuth(voteHandler.CastVote)

	staleToken := testutil.MintTestTokenAt(t, db, "alice@x.com", time.Now().Add(-2*time.Hour).Unix())
	freshToken := testutil.MintTestToken(t, db, "alice@x.com")

	// Expired token is rejected and lazily deleted
	req := testutil.MakeRequest("POST", "/vote", models.VoteRequest{ContestantID: "7"},
		map[string]string{"Authorization": "Bearer " + staleToken})
	w := httptest.NewRecorder()
	protected(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM token WHERE token = $1`, staleToken).Scan(&count); err != nil {
		t.Fatalf("Failed to count tokens: %v", err)
	}
	if count != 0 {
		t.Error("Expired token was not deleted on rejected use")
	}

	// A fresh token for the same voter still works
	req = testutil.MakeRequest("POST", "/vote", models.VoteRequest{ContestantID: "7"},
		map[string]string{"Authorization": "Bearer " + freshToken})
	w = httptest.NewRecorder()
	protected(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestMintValidateRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	testutil.SeedTestVoters(t, db, "alice@x.com")
	testutil.IssueTestCode(t, db, "alice@x.com", "123456", time.Now().Unix()+600)

	accessHandler := NewAccessHandler(db, cfg, &testutil.FakeSender{})
	authn := NewAuthenticator(db, cfg)

	// Mint via the redeem path
	w := httptest.NewRecorder()
	accessHandler.Access(w, testutil.MakeRequest("POST", "/access",
		models.AccessRequest{Email: "alice@x.com", Code: "123456"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.TokenResponse
	testutil.AssertJSON(t, w, &resp)

	// Validate resolves back to the original email
	var gotEmail string
	probe := authn.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotEmail, _ = VoterEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w = httptest.NewRecorder()
	probe(w, testutil.MakeRequest("POST", "/vote", nil,
		map[string]string{"Authorization": "Bearer " + resp.Token}))
	testutil.AssertStatus(t, w, http.StatusOK)

	if gotEmail != "alice@x.com" {
		t.Errorf("Token resolved to %q, expected alice@x.com", gotEmail)
	}
}
