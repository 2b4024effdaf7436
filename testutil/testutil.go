// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
)

// SetupTestDB creates a fresh SQLite database under t.TempDir with the
// full schema. Each test gets its own file, so no cross-test cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ballotbox_test.db")
	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// SQLite permits one writer at a time; a single pooled connection
	// keeps concurrent tests from hitting SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseURL:   "test",
		DatabaseType:  "sqlite",
		AllowedEmails: []string{"alice@x.com", "bob@x.com", "carol@x.com"},
		CodeTTL:       600 * time.Second,
		TokenTTL:      0,
		FromEmail:     "votes@example.com",
		FromName:      "Ballot Box",
	}
}

// SeedTestVoters inserts allow-list rows directly
func SeedTestVoters(t *testing.T, conn *sql.DB, emails ...string) {
	t.Helper()

	for _, email := range emails {
		_, err := conn.Exec(`
			INSERT INTO voter (email) VALUES ($1)
			ON CONFLICT (email) DO NOTHING
		`, email)
		if err != nil {
			t.Fatalf("Failed to seed test voter %s: %v", email, err)
		}
	}
}

// IssueTestCode writes a verification code and expiry straight into the
// voter row, bypassing the issuer. Expiry is unix seconds; pass a past
// value to simulate staleness.
func IssueTestCode(t *testing.T, conn *sql.DB, email, code string, expiry int64) {
	t.Helper()

	res, err := conn.Exec(`
		UPDATE voter SET verification_code = $1, code_expiry = $2 WHERE email = $3
	`, code, expiry, email)
	if err != nil {
		t.Fatalf("Failed to issue test code: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		t.Fatalf("Failed to issue test code: voter %s not seeded", email)
	}
}

// MintTestToken mints and persists a token for a voter
func MintTestToken(t *testing.T, conn *sql.DB, email string) string {
	t.Helper()
	return MintTestTokenAt(t, conn, email, time.Now().Unix())
}

// MintTestTokenAt mints a token with an explicit issuance time, for
// exercising token expiry.
func MintTestTokenAt(t *testing.T, conn *sql.DB, email string, createdAt int64) string {
	t.Helper()

	token, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("Failed to generate test token: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO token (token, email, created_at) VALUES ($1, $2, $3)
	`, token, email, createdAt)
	if err != nil {
		t.Fatalf("Failed to insert test token: %v", err)
	}
	return token
}

// FakeSender records dispatched emails instead of sending them. Set Err to
// make every Send fail with that error.
type FakeSender struct {
	mu   sync.Mutex
	Err  error
	Sent []SentEmail
}

type SentEmail struct {
	To        string
	Subject   string
	PlainBody string
	HTMLBody  string
}

func (f *FakeSender) Send(_ context.Context, toEmail, subject, plainBody, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Sent = append(f.Sent, SentEmail{
		To:        toEmail,
		Subject:   subject,
		PlainBody: plainBody,
		HTMLBody:  htmlBody,
	})
	return nil
}

// LastSent returns the most recently recorded email
func (f *FakeSender) LastSent(t *testing.T) SentEmail {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Sent) == 0 {
		t.Fatal("No emails were sent")
	}
	return f.Sent[len(f.Sent)-1]
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
