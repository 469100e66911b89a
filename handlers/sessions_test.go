// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pickr/models"
	"github.com/danielhkuo/pickr/ranking"
	"github.com/danielhkuo/pickr/store"
	"github.com/danielhkuo/pickr/testutil"
)

type startedSession struct {
	models.SessionResponse
	Estimate ranking.SessionEstimate `json:"estimate"`
}

func startSession(t *testing.T, h *SessionHandler, packID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("POST", "/packs/"+packID+"/sessions", body, nil)
	req.SetPathValue("id", packID)
	w := httptest.NewRecorder()
	h.StartSession(w, req)
	return w
}

func submit(t *testing.T, h *SessionHandler, sessionID string, cardIDs []string, winnerID string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/comparisons",
		models.SubmitComparisonRequest{CardIDs: cardIDs, WinnerID: winnerID}, nil)
	req.SetPathValue("id", sessionID)
	w := httptest.NewRecorder()
	h.SubmitComparison(w, req)
	return w
}

func getSession(t *testing.T, h *SessionHandler, sessionID string) models.SessionResponse {
	t.Helper()
	req := httptest.NewRequest("GET", "/sessions/"+sessionID, nil)
	req.SetPathValue("id", sessionID)
	w := httptest.NewRecorder()
	h.GetSession(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SessionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func ids(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestStartSession(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B", "C")
	tiny, _ := testutil.CreateTestPack(t, repo, cfg, "Only")

	tests := []struct {
		name           string
		packID         string
		body           interface{}
		expectedStatus int
		wantErrors     []string
	}{
		{"defaults", pack.ID, nil, http.StatusCreated, nil},
		{"tournament", pack.ID, models.StartSessionRequest{Algorithm: models.AlgorithmTournament}, http.StatusCreated, nil},
		{"swiss", pack.ID, models.StartSessionRequest{Algorithm: models.AlgorithmSwiss}, http.StatusCreated, nil},
		{"missing pack", "missing", nil, http.StatusNotFound, nil},
		{
			"size larger than pack", pack.ID, models.StartSessionRequest{ComparisonSize: 4}, http.StatusBadRequest,
			[]string{"Comparison size cannot be larger than the number of cards"},
		},
		{
			"size too small", pack.ID, models.StartSessionRequest{ComparisonSize: 1}, http.StatusBadRequest,
			[]string{"Comparison size must be at least 2"},
		},
		{
			"one card", tiny.ID, nil, http.StatusBadRequest,
			[]string{"Comparison size cannot be larger than the number of cards", "At least 2 cards are required for ranking"},
		},
		{
			"unknown algorithm", pack.ID, models.StartSessionRequest{Algorithm: "elo"}, http.StatusBadRequest,
			[]string{"Unknown algorithm: elo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := startSession(t, handler, tt.packID, tt.body)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			switch tt.expectedStatus {
			case http.StatusCreated:
				var resp startedSession
				testutil.AssertJSON(t, w, &resp)
				if resp.Session.PackID != pack.ID || resp.Session.IsComplete {
					t.Errorf("Unexpected session: %+v", resp.Session)
				}
				if len(resp.CurrentComparison) != 2 {
					t.Errorf("Expected a first pair, got %+v", resp.CurrentComparison)
				}
				if resp.Estimate.EstimatedComparisons != resp.Progress.TotalComparisons {
					t.Errorf("Estimate %d disagrees with progress total %d",
						resp.Estimate.EstimatedComparisons, resp.Progress.TotalComparisons)
				}
			case http.StatusBadRequest:
				var resp models.ValidationErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if len(resp.Errors) != len(tt.wantErrors) {
					t.Fatalf("Expected errors %v, got %v", tt.wantErrors, resp.Errors)
				}
				for i := range resp.Errors {
					if resp.Errors[i] != tt.wantErrors[i] {
						t.Errorf("Error %d = %q, want %q", i, resp.Errors[i], tt.wantErrors[i])
					}
				}
			}
		})
	}
}

func TestSubmitComparison_Validation(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B", "C")
	session := testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmPairwise)
	a, b, c := pack.Cards[0].ID, pack.Cards[1].ID, pack.Cards[2].ID

	tests := []struct {
		name           string
		cardIDs        []string
		winnerID       string
		expectedStatus int
	}{
		{"one card", []string{a}, a, http.StatusBadRequest},
		{"three cards", []string{a, b, c}, a, http.StatusBadRequest},
		{"missing winner", []string{a, b}, "", http.StatusBadRequest},
		{"winner outside pair", []string{a, b}, c, http.StatusBadRequest},
		{"not the current pair", []string{a, c}, a, http.StatusConflict},
		{"unknown cards", []string{"x", "y"}, "x", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submit(t, handler, session.ID, tt.cardIDs, tt.winnerID)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// Nothing above may have been recorded
	if got := getSession(t, handler, session.ID); len(got.Session.Comparisons) != 0 {
		t.Errorf("Expected no comparisons, got %d", len(got.Session.Comparisons))
	}

	t.Run("missing session", func(t *testing.T) {
		w := submit(t, handler, "missing", []string{a, b}, a)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSubmitComparison_ReversedPairAccepted(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B", "C")
	session := testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmPairwise)

	w := submit(t, handler, session.ID, []string{pack.Cards[1].ID, pack.Cards[0].ID}, pack.Cards[1].ID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SubmitComparisonResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.IsComplete {
		t.Error("Session should not be complete after 1 of 3 comparisons")
	}
	if resp.Progress.CompletedComparisons != 1 || resp.Progress.TotalComparisons != 3 {
		t.Errorf("Unexpected progress %+v", resp.Progress)
	}
	if len(resp.CurrentComparison) != 2 || resp.CurrentComparison[0].ID != pack.Cards[0].ID || resp.CurrentComparison[1].ID != pack.Cards[2].ID {
		t.Errorf("Expected next pair A vs C, got %+v", resp.CurrentComparison)
	}
}

func TestSession_PairwiseToCompletion(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B", "C")
	session := testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmPairwise)

	// The card listed first in the pack always wins
	var last models.SubmitComparisonResponse
	for step := 0; step < 3; step++ {
		view := getSession(t, handler, session.ID)
		if len(view.CurrentComparison) != 2 {
			t.Fatalf("step %d: expected a pair, got %+v", step, view.CurrentComparison)
		}
		pair := view.CurrentComparison

		w := submit(t, handler, session.ID, ids(pair), pair[0].ID)
		testutil.AssertStatus(t, w, http.StatusOK)
		last = models.SubmitComparisonResponse{}
		testutil.AssertJSON(t, w, &last)
	}

	if !last.IsComplete || last.Result == nil {
		t.Fatalf("Expected completion with a result, got %+v", last)
	}
	if last.CurrentComparison != nil {
		t.Errorf("Expected no next pair, got %+v", last.CurrentComparison)
	}
	if last.Progress.PercentComplete != 100 {
		t.Errorf("Expected 100%%, got %v", last.Progress.PercentComplete)
	}

	result := last.Result
	if result.Metadata.TotalComparisons != 3 || result.Metadata.Algorithm != models.AlgorithmPairwise {
		t.Errorf("Unexpected metadata %+v", result.Metadata)
	}
	if result.Metadata.CompletionTimeMs < 0 {
		t.Errorf("Negative completion time %d", result.Metadata.CompletionTimeMs)
	}
	for i, want := range []string{"A", "B", "C"} {
		if result.Rankings[i].Content != want || result.Rankings[i].Rank != i+1 {
			t.Errorf("Rank %d = %+v, want %s", i+1, result.Rankings[i], want)
		}
	}
	if result.Rankings[0].Wins != 2 || result.Rankings[0].Score != 1 {
		t.Errorf("Unexpected winner stats %+v", result.Rankings[0])
	}

	stored, err := repo.GetResultBySession(t.Context(), session.ID)
	if err != nil {
		t.Fatalf("GetResultBySession: %v", err)
	}
	if stored.ID != result.ID {
		t.Errorf("Stored result %s, response result %s", stored.ID, result.ID)
	}

	// No further comparisons accepted
	w := submit(t, handler, session.ID, []string{pack.Cards[0].ID, pack.Cards[1].ID}, pack.Cards[0].ID)
	testutil.AssertStatus(t, w, http.StatusConflict)

	view := getSession(t, handler, session.ID)
	if !view.Session.IsComplete || view.CurrentComparison != nil {
		t.Errorf("Expected complete session without pair, got %+v", view)
	}
}

func TestSession_TournamentToCompletion(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B", "C", "D")
	session := testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmTournament)

	// D beats everything; otherwise the earlier card wins
	contents := map[string]string{}
	for _, c := range pack.Cards {
		contents[c.ID] = c.Content
	}

	var last models.SubmitComparisonResponse
	steps := 0
	for {
		view := getSession(t, handler, session.ID)
		if view.Session.IsComplete {
			break
		}
		pair := view.CurrentComparison
		winner := pair[0].ID
		if contents[pair[1].ID] == "D" {
			winner = pair[1].ID
		}

		w := submit(t, handler, session.ID, ids(pair), winner)
		testutil.AssertStatus(t, w, http.StatusOK)
		last = models.SubmitComparisonResponse{}
		testutil.AssertJSON(t, w, &last)

		steps++
		if steps > 3 {
			t.Fatal("tournament over 4 cards took more than 3 comparisons")
		}
	}

	if steps != 3 {
		t.Errorf("Expected 3 comparisons, got %d", steps)
	}
	if last.Result == nil || last.Result.Rankings[0].Content != "D" {
		t.Fatalf("Expected D to win, got %+v", last.Result)
	}
}

func TestNextComparison(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B")
	session := testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmPairwise)

	next := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/sessions/"+session.ID+"/next", nil)
		req.SetPathValue("id", session.ID)
		w := httptest.NewRecorder()
		handler.NextComparison(w, req)
		return w
	}

	w := next()
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.NextComparisonResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Cards) != 2 || resp.Progress.TotalComparisons != 1 {
		t.Errorf("Unexpected next response %+v", resp)
	}

	testutil.AssertStatus(t, submit(t, handler, session.ID, ids(resp.Cards), resp.Cards[1].ID), http.StatusOK)
	testutil.AssertStatus(t, next(), http.StatusNoContent)
}

func TestProgressAndRankings(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B", "C")
	session := testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmPairwise)
	a, b := pack.Cards[0], pack.Cards[1]

	testutil.AssertStatus(t, submit(t, handler, session.ID, []string{a.ID, b.ID}, b.ID), http.StatusOK)

	req := httptest.NewRequest("GET", "/sessions/"+session.ID+"/progress", nil)
	req.SetPathValue("id", session.ID)
	w := httptest.NewRecorder()
	handler.GetProgress(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var progress models.RankingProgress
	testutil.AssertJSON(t, w, &progress)
	if progress.CompletedComparisons != 1 || progress.TotalComparisons != 3 {
		t.Errorf("Unexpected progress %+v", progress)
	}

	req = httptest.NewRequest("GET", "/sessions/"+session.ID+"/rankings", nil)
	req.SetPathValue("id", session.ID)
	w = httptest.NewRecorder()
	handler.GetRankings(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var rankings []models.RankedCard
	testutil.AssertJSON(t, w, &rankings)
	if len(rankings) != 3 || rankings[0].ID != b.ID {
		t.Errorf("Expected B on top of provisional rankings, got %+v", rankings)
	}
}

func TestCompleteSession_Early(t *testing.T) {
	repo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	handler := NewSessionHandler(repo, cfg)

	pack, _ := testutil.CreateTestPack(t, repo, cfg, "A", "B", "C")
	session := testutil.CreateTestSession(t, repo, pack.ID, models.AlgorithmPairwise)
	testutil.AssertStatus(t, submit(t, handler, session.ID, ids(pack.Cards[:2]), pack.Cards[0].ID), http.StatusOK)

	complete := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/sessions/"+session.ID+"/complete", nil)
		req.SetPathValue("id", session.ID)
		w := httptest.NewRecorder()
		handler.CompleteSession(w, req)
		return w
	}

	w := complete()
	testutil.AssertStatus(t, w, http.StatusCreated)
	var first models.RankingResult
	testutil.AssertJSON(t, w, &first)
	if first.Metadata.TotalComparisons != 1 || len(first.Rankings) != 3 {
		t.Errorf("Unexpected early result %+v", first)
	}

	// Idempotent: the stored result comes back
	w = complete()
	testutil.AssertStatus(t, w, http.StatusOK)
	var second models.RankingResult
	testutil.AssertJSON(t, w, &second)
	if second.ID != first.ID {
		t.Errorf("Expected same result %s, got %s", first.ID, second.ID)
	}

	if view := getSession(t, handler, session.ID); !view.Session.IsComplete {
		t.Error("Session should be complete")
	}
}

// interleavingRepo runs before once, ahead of the first CompleteSession
type interleavingRepo struct {
	*store.SQL
	before func()
}

func (r *interleavingRepo) CompleteSession(ctx context.Context, result models.RankingResult, comparisons int) error {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	return r.SQL.CompleteSession(ctx, result, comparisons)
}

func TestCompleteSession_ComparisonLandsMidway(t *testing.T) {
	sqlRepo := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()

	pack, _ := testutil.CreateTestPack(t, sqlRepo, cfg, "A", "B", "C")
	session := testutil.CreateTestSession(t, sqlRepo, pack.ID, models.AlgorithmPairwise)
	a, b := pack.Cards[0], pack.Cards[1]

	repo := &interleavingRepo{SQL: sqlRepo}
	handler := NewSessionHandler(repo, cfg)

	// B beats A after the handler has loaded the empty log
	repo.before = func() {
		testutil.AssertStatus(t, submit(t, NewSessionHandler(sqlRepo, cfg), session.ID, []string{a.ID, b.ID}, b.ID), http.StatusOK)
	}

	req := httptest.NewRequest("POST", "/sessions/"+session.ID+"/complete", nil)
	req.SetPathValue("id", session.ID)
	w := httptest.NewRecorder()
	handler.CompleteSession(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var result models.RankingResult
	testutil.AssertJSON(t, w, &result)
	if result.Metadata.TotalComparisons != 1 {
		t.Errorf("Expected the late comparison in the result, got %d comparisons", result.Metadata.TotalComparisons)
	}
	if result.Rankings[0].ID != b.ID {
		t.Errorf("Expected B first, got %s", result.Rankings[0].Content)
	}
}

func TestSessionHandlers_NotFound(t *testing.T) {
	handler := NewSessionHandler(testutil.SetupTestStore(t), testutil.GetTestConfig())

	for name, fn := range map[string]http.HandlerFunc{
		"get":      handler.GetSession,
		"next":     handler.NextComparison,
		"progress": handler.GetProgress,
		"rankings": handler.GetRankings,
		"complete": handler.CompleteSession,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/sessions/missing", nil)
			req.SetPathValue("id", "missing")
			w := httptest.NewRecorder()
			fn(w, req)
			testutil.AssertStatus(t, w, http.StatusNotFound)
		})
	}
}
