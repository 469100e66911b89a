// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/pickr/auth"
	"github.com/danielhkuo/pickr/cliparse"
	"github.com/danielhkuo/pickr/metrics"
	"github.com/danielhkuo/pickr/middleware"
	"github.com/danielhkuo/pickr/models"
	"github.com/danielhkuo/pickr/ranking"
	"github.com/danielhkuo/pickr/store"
)

var knownAlgorithms = map[string]bool{
	models.AlgorithmPairwise:   true,
	models.AlgorithmTournament: true,
	models.AlgorithmSwiss:      true,
}

type SessionHandler struct {
	repo store.Repository
	cfg  cliparse.Config
}

func NewSessionHandler(repo store.Repository, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{repo: repo, cfg: cfg}
}

// startSessionResponse adds the time estimate to the usual session view
type startSessionResponse struct {
	models.SessionResponse
	Estimate ranking.SessionEstimate `json:"estimate"`
}

// StartSession handles POST /packs/{id}/sessions
// An empty body starts a pairwise session.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	settings := ranking.DefaultSettings()
	if req.ComparisonSize != 0 {
		settings.ComparisonSize = req.ComparisonSize
	}
	if req.Algorithm != "" {
		settings.Algorithm = req.Algorithm
	}

	pack, err := h.repo.GetPack(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Pack")
		return
	}

	result := ranking.ValidateSettings(settings, len(pack.Cards))
	if !knownAlgorithms[settings.Algorithm] {
		result.Errors = append(result.Errors, "Unknown algorithm: "+settings.Algorithm)
	}
	if len(result.Errors) > 0 {
		middleware.ValidationErrorResponse(w, result.Errors)
		return
	}

	now := time.Now().UTC()
	session := models.RankingSession{
		ID:          auth.NewID(),
		PackID:      pack.ID,
		Comparisons: []models.Comparison{},
		Settings:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.repo.CreateSession(r.Context(), session); err != nil {
		storeError(w, err, "Session")
		return
	}

	metrics.SessionStarted(settings.Algorithm)
	slog.Info("session started",
		"session_id", session.ID,
		"pack_id", pack.ID,
		"algorithm", settings.Algorithm,
		"cards", len(pack.Cards),
	)

	middleware.JSONResponse(w, http.StatusCreated, startSessionResponse{
		SessionResponse: view(session, pack.Cards),
		Estimate:        ranking.EstimateSessionTime(len(pack.Cards), settings, ranking.DefaultComparisonTime),
	})
}

// load fetches a session together with its pack's cards
func (h *SessionHandler) load(ctx context.Context, id string) (models.RankingSession, []models.Card, error) {
	session, err := h.repo.GetSession(ctx, id)
	if err != nil {
		return models.RankingSession{}, nil, err
	}
	pack, err := h.repo.GetPack(ctx, session.PackID)
	if err != nil {
		return models.RankingSession{}, nil, err
	}
	return session, pack.Cards, nil
}

func view(session models.RankingSession, cards []models.Card) models.SessionResponse {
	resp := models.SessionResponse{
		Session:  session,
		Progress: ranking.CalculateProgress(cards, session.Comparisons, session.Settings),
	}
	if !session.IsComplete {
		resp.CurrentComparison = ranking.NextPair(cards, session.Comparisons, session.Settings)
	}
	return resp
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, cards, err := h.load(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Session")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, view(session, cards))
}

// NextComparison handles GET /sessions/{id}/next
// Responds 204 once nothing is left to compare.
func (h *SessionHandler) NextComparison(w http.ResponseWriter, r *http.Request) {
	session, cards, err := h.load(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Session")
		return
	}

	var pair []models.Card
	if !session.IsComplete {
		pair = ranking.NextPair(cards, session.Comparisons, session.Settings)
	}
	if pair == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NextComparisonResponse{
		Cards:    pair,
		Progress: ranking.CalculateProgress(cards, session.Comparisons, session.Settings),
	})
}

// SubmitComparison handles POST /sessions/{id}/comparisons
// Only the pair the session is currently asking about is accepted.
func (h *SessionHandler) SubmitComparison(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitComparisonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := middleware.Validate(req); len(errs) > 0 {
		middleware.ValidationErrorResponse(w, errs)
		return
	}
	if len(req.CardIDs) != 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A comparison has exactly 2 cards")
		return
	}

	session, cards, err := h.load(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Session")
		return
	}
	if session.IsComplete {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is already complete")
		return
	}

	pair := ranking.NextPair(cards, session.Comparisons, session.Settings)
	if pair == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "No comparisons remaining")
		return
	}
	submitted := []models.Card{{ID: req.CardIDs[0]}, {ID: req.CardIDs[1]}}
	if !ranking.SamePair(pair, submitted) {
		middleware.ErrorResponse(w, http.StatusConflict, "Cards do not match the current comparison")
		return
	}

	var winner *models.Card
	for i := range pair {
		if pair[i].ID == req.WinnerID {
			winner = &pair[i]
		}
	}
	if winner == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "winner_id must be one of card_ids")
		return
	}

	now := time.Now().UTC()
	comparison := models.Comparison{
		ID:        auth.NewID(),
		Cards:     pair,
		Winner:    winner,
		Timestamp: now,
	}
	seq := len(session.Comparisons)
	session.Comparisons = append(session.Comparisons, comparison)

	var result *models.RankingResult
	complete := ranking.IsComplete(cards, session.Comparisons, session.Settings)
	if complete {
		res := buildResult(session, cards, now)
		result = &res
	}

	if err := h.repo.RecordComparison(r.Context(), session.ID, seq, comparison, result); err != nil {
		storeError(w, err, "Session")
		return
	}

	metrics.ComparisonRecorded(session.Settings.Algorithm)
	slog.Info("comparison recorded",
		"session_id", session.ID,
		"seq", seq,
		"comparison", ranking.FormatComparison(comparison),
	)

	resp := models.SubmitComparisonResponse{
		ComparisonID: comparison.ID,
		Progress:     ranking.CalculateProgress(cards, session.Comparisons, session.Settings),
		IsComplete:   complete,
		Result:       result,
	}
	if complete {
		metrics.SessionCompleted(session.Settings.Algorithm)
		slog.Info("session completed", "session_id", session.ID, "result_id", result.ID)
	} else {
		resp.CurrentComparison = ranking.NextPair(cards, session.Comparisons, session.Settings)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetProgress handles GET /sessions/{id}/progress
func (h *SessionHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	session, cards, err := h.load(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Session")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ranking.CalculateProgress(cards, session.Comparisons, session.Settings))
}

// GetRankings handles GET /sessions/{id}/rankings
// Rankings are provisional until the session completes.
func (h *SessionHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	session, cards, err := h.load(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Session")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ranking.FinalRankings(cards, session.Comparisons, session.Settings))
}

// completeAttempts bounds how often CompleteSession reloads a session whose
// log grew while its result was being computed
const completeAttempts = 3

// CompleteSession handles POST /sessions/{id}/complete
// Ends the session with whatever comparisons exist. Completing an already
// complete session returns its stored result.
func (h *SessionHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	for attempt := 0; attempt < completeAttempts; attempt++ {
		session, cards, err := h.load(r.Context(), r.PathValue("id"))
		if err != nil {
			storeError(w, err, "Session")
			return
		}
		if session.IsComplete {
			h.storedResult(w, r, session.ID)
			return
		}

		result := buildResult(session, cards, time.Now().UTC())
		err = h.repo.CompleteSession(r.Context(), result, len(session.Comparisons))
		if err == nil {
			metrics.SessionCompleted(session.Settings.Algorithm)
			slog.Info("session completed", "session_id", session.ID, "result_id", result.ID, "early", true)
			middleware.JSONResponse(w, http.StatusCreated, result)
			return
		}
		if !errors.Is(err, store.ErrConflict) {
			storeError(w, err, "Session")
			return
		}
		// A comparison or another completion committed first; reload
		slog.Debug("session changed during completion", "session_id", session.ID, "attempt", attempt+1)
	}

	middleware.ErrorResponse(w, http.StatusConflict, "Session changed while completing")
}

func (h *SessionHandler) storedResult(w http.ResponseWriter, r *http.Request, sessionID string) {
	existing, err := h.repo.GetResultBySession(r.Context(), sessionID)
	if err != nil {
		storeError(w, err, "Result")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, existing)
}

func buildResult(session models.RankingSession, cards []models.Card, now time.Time) models.RankingResult {
	return models.RankingResult{
		ID:        auth.NewID(),
		SessionID: session.ID,
		PackID:    session.PackID,
		Rankings:  ranking.FinalRankings(cards, session.Comparisons, session.Settings),
		Metadata: models.ResultMetadata{
			TotalComparisons: ranking.CountResolved(session.Comparisons),
			Algorithm:        session.Settings.Algorithm,
			CompletionTimeMs: now.Sub(session.CreatedAt).Milliseconds(),
		},
		CreatedAt: now,
	}
}
