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
	"testing"
	"time"

	"github.com/danielhkuo/pickr/auth"
	"github.com/danielhkuo/pickr/cliparse"
	"github.com/danielhkuo/pickr/db"
	"github.com/danielhkuo/pickr/models"
	"github.com/danielhkuo/pickr/store"
)

// SetupTestDB creates a fresh SQLite database in t.TempDir() and applies the
// production migrations. The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// SetupTestStore returns a repository over a fresh test database
func SetupTestStore(t *testing.T) *store.SQL {
	t.Helper()
	return store.NewSQL(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "test.db",
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: "test-admin-salt",
		PackSlugSalt: "test-slug-salt",
		BaseURL:      "http://pickr.test",
		LogLevel:     "error",
		LogFormat:    "text",
		RateLimit:    0,
	}
}

// CreateTestPack stores a pack with one card per content string and returns
// the pack (cards in order) and its admin key
func CreateTestPack(t *testing.T, repo store.PackRepository, cfg cliparse.Config, contents ...string) (models.Pack, string) {
	t.Helper()

	now := time.Now().UTC()
	pack := models.Pack{
		ID:          auth.NewID(),
		Name:        "Test Pack",
		Description: "A test pack",
		Cards:       []models.Card{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pack.ShareSlug = auth.GenerateShareSlug(pack.ID, cfg.PackSlugSalt)
	for _, content := range contents {
		pack.Cards = append(pack.Cards, models.Card{
			ID:        auth.NewID(),
			Content:   content,
			CreatedAt: now,
		})
	}

	if err := repo.CreatePack(context.Background(), pack); err != nil {
		t.Fatalf("Failed to create test pack: %v", err)
	}

	return pack, auth.GenerateAdminKey(pack.ID, cfg.AdminKeySalt)
}

// CreateTestSession starts a session on the pack with the given algorithm
func CreateTestSession(t *testing.T, repo store.SessionRepository, packID, algorithm string) models.RankingSession {
	t.Helper()

	now := time.Now().UTC()
	session := models.RankingSession{
		ID:          auth.NewID(),
		PackID:      packID,
		Comparisons: []models.Comparison{},
		Settings:    models.RankingSettings{ComparisonSize: 2, Algorithm: algorithm},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return session
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
