// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/pickr/auth"
	"github.com/danielhkuo/pickr/models"
	"github.com/danielhkuo/pickr/testutil"
)

func TestCreatePack(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewPackHandler(repo, cfg)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"valid pack", models.CreatePackRequest{Name: "Snacks", Description: "Which snack wins?"}, http.StatusCreated},
		{"missing name", models.CreatePackRequest{Description: "no name"}, http.StatusBadRequest},
		{"name too long", models.CreatePackRequest{Name: strings.Repeat("x", 101)}, http.StatusBadRequest},
		{"invalid JSON", "not-json", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if s, ok := tt.body.(string); ok {
				req = httptest.NewRequest("POST", "/packs", strings.NewReader(s))
			} else {
				req = testutil.MakeRequest("POST", "/packs", tt.body, nil)
			}
			w := httptest.NewRecorder()

			handler.CreatePack(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusCreated {
				return
			}
			var resp models.CreatePackResponse
			testutil.AssertJSON(t, w, &resp)
			if !auth.IsID(resp.PackID) {
				t.Errorf("Expected UUID pack ID, got %q", resp.PackID)
			}
			if err := auth.ValidateAdminKey(resp.PackID, resp.AdminKey, cfg.AdminKeySalt); err != nil {
				t.Errorf("Returned admin key does not validate: %v", err)
			}
			if resp.ShareSlug != auth.GenerateShareSlug(resp.PackID, cfg.PackSlugSalt) {
				t.Errorf("Unexpected share slug %q", resp.ShareSlug)
			}
		})
	}
}

func TestCreatePack_ValidationErrors(t *testing.T) {
	handler := NewPackHandler(testutil.SetupTestStore(t), testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/packs", models.CreatePackRequest{}, nil)
	w := httptest.NewRecorder()
	handler.CreatePack(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ValidationErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Errors) != 1 || resp.Errors[0] != "name is required" {
		t.Errorf("Expected [name is required], got %v", resp.Errors)
	}
}

func TestGetAndListPacks(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewPackHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "Pizza", "Tacos")

	t.Run("get by id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/packs/"+pack.ID, nil)
		req.SetPathValue("id", pack.ID)
		w := httptest.NewRecorder()
		handler.GetPack(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var got models.Pack
		testutil.AssertJSON(t, w, &got)
		if len(got.Cards) != 2 || got.Cards[0].Content != "Pizza" {
			t.Errorf("Unexpected cards: %+v", got.Cards)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/packs/missing", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()
		handler.GetPack(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("get by slug", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/p/"+pack.ShareSlug, nil)
		req.SetPathValue("slug", pack.ShareSlug)
		w := httptest.NewRecorder()
		handler.GetPackBySlug(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/packs", nil)
		w := httptest.NewRecorder()
		handler.ListPacks(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var got []models.Pack
		testutil.AssertJSON(t, w, &got)
		if len(got) != 1 || got[0].ID != pack.ID {
			t.Errorf("Unexpected pack list: %+v", got)
		}
	})
}

func TestAddCard(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewPackHandler(repo, cfg)

	pack, adminKey := testutil.CreateTestPack(t, repo, cfg, "Pizza")

	tests := []struct {
		name           string
		adminKey       string
		body           models.AddCardRequest
		expectedStatus int
	}{
		{"valid card", adminKey, models.AddCardRequest{Content: "Tacos"}, http.StatusCreated},
		{"card with image", adminKey, models.AddCardRequest{Content: "Sushi", ImageURL: "https://img.test/sushi.png"}, http.StatusCreated},
		{"missing admin key", "", models.AddCardRequest{Content: "Ramen"}, http.StatusUnauthorized},
		{"wrong admin key", "wrong", models.AddCardRequest{Content: "Ramen"}, http.StatusUnauthorized},
		{"missing content", adminKey, models.AddCardRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/packs/"+pack.ID+"/cards", tt.body, map[string]string{"X-Admin-Key": tt.adminKey})
			req.SetPathValue("id", pack.ID)
			w := httptest.NewRecorder()

			handler.AddCard(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	got, err := repo.GetPack(t.Context(), pack.ID)
	if err != nil {
		t.Fatalf("GetPack: %v", err)
	}
	if len(got.Cards) != 3 {
		t.Errorf("Expected 3 cards after adds, got %d", len(got.Cards))
	}
}

func TestAddCard_FrozenAfterSessionStart(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewPackHandler(repo, cfg)

	pack, adminKey := testutil.CreateTestPack(t, repo, cfg, "A", "B")
	testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmPairwise)

	req := testutil.MakeRequest("POST", "/packs/"+pack.ID+"/cards", models.AddCardRequest{Content: "C"}, map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", pack.ID)
	w := httptest.NewRecorder()

	handler.AddCard(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestDeletePack(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewPackHandler(repo, cfg)

	pack, adminKey := testutil.CreateTestPack(t, repo, cfg, "A")

	send := func(key string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/packs/"+pack.ID, nil, map[string]string{"X-Admin-Key": key})
		req.SetPathValue("id", pack.ID)
		w := httptest.NewRecorder()
		handler.DeletePack(w, req)
		return w
	}

	testutil.AssertStatus(t, send("wrong"), http.StatusUnauthorized)
	testutil.AssertStatus(t, send(adminKey), http.StatusNoContent)
	testutil.AssertStatus(t, send(adminKey), http.StatusNotFound)
}
