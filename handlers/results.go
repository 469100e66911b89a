// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/pickr/cliparse"
	"github.com/danielhkuo/pickr/middleware"
	"github.com/danielhkuo/pickr/models"
	"github.com/danielhkuo/pickr/paco"
	"github.com/danielhkuo/pickr/ranking"
	"github.com/danielhkuo/pickr/store"
)

// maxCompareResults bounds POST /results/compare fan-out
const maxCompareResults = 20

type ResultsHandler struct {
	repo store.Repository
	cfg  cliparse.Config
}

func NewResultsHandler(repo store.Repository, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{repo: repo, cfg: cfg}
}

// GetResult handles GET /results/{id}
func (h *ResultsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.GetResult(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Result")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// ListPackResults handles GET /packs/{id}/results
func (h *ResultsHandler) ListPackResults(w http.ResponseWriter, r *http.Request) {
	packID := r.PathValue("id")
	if _, err := h.repo.GetPack(r.Context(), packID); err != nil {
		storeError(w, err, "Pack")
		return
	}

	results, err := h.repo.ListResultsByPack(r.Context(), packID)
	if err != nil {
		storeError(w, err, "Results")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, results)
}

// ShareResult handles POST /results/{id}/share
// Encodes the result as a paco code and remembers it on the result.
func (h *ResultsHandler) ShareResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.GetResult(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Result")
		return
	}

	code, err := paco.Encode(models.PacoData{
		PackID:   result.PackID,
		Rankings: result.Rankings,
		Metadata: models.PacoMetadata{
			Timestamp: result.CreatedAt,
			Version:   models.PacoVersion,
			Algorithm: result.Metadata.Algorithm,
		},
	})
	if err != nil {
		slog.Error("failed to encode share code", "result_id", result.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create share code")
		return
	}
	short, err := paco.ShortCode(code)
	if err != nil {
		slog.Error("failed to create short code", "result_id", result.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create share code")
		return
	}

	if err := h.repo.SetPacoCode(r.Context(), result.ID, code); err != nil {
		storeError(w, err, "Result")
		return
	}

	slog.Info("result shared", "result_id", result.ID, "short_code", short, "bytes", len(code))

	middleware.JSONResponse(w, http.StatusOK, models.ShareResultResponse{
		PacoCode:  code,
		ShortCode: short,
		ShareURL:  paco.ShareURL(code, h.cfg.BaseURL),
	})
}

// GetShared handles GET /shared?code=...
// Decoding needs no database access; the code carries the whole result.
func (h *ResultsHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	data, err := paco.Decode(code)
	if err != nil {
		if errors.Is(err, paco.ErrInvalidCode) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid share code")
			return
		}
		slog.Error("failed to decode share code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to decode share code")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, data)
}

// CompareResults handles POST /results/compare
func (h *ResultsHandler) CompareResults(w http.ResponseWriter, r *http.Request) {
	var req models.CompareResultsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := middleware.Validate(req); len(errs) > 0 {
		middleware.ValidationErrorResponse(w, errs)
		return
	}
	if len(req.ResultIDs) > maxCompareResults {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Too many results to compare")
		return
	}

	results := make([]models.RankingResult, len(req.ResultIDs))
	g, ctx := errgroup.WithContext(r.Context())
	for i, id := range req.ResultIDs {
		g.Go(func() error {
			res, err := h.repo.GetResult(ctx, id)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		storeError(w, err, "Result")
		return
	}

	analysis, err := ranking.CompareResults(results)
	if err != nil {
		if errors.Is(err, ranking.ErrNotEnoughResults) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to compare results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compare results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, analysis)
}

// DeleteResult handles DELETE /results/{id}
// Requires the admin key of the result's pack.
func (h *ResultsHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.GetResult(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Result")
		return
	}
	if !requireAdmin(w, r, h.cfg, result.PackID) {
		return
	}

	if err := h.repo.DeleteResult(r.Context(), result.ID); err != nil {
		storeError(w, err, "Result")
		return
	}

	slog.Info("result deleted", "result_id", result.ID, "pack_id", result.PackID)
	w.WriteHeader(http.StatusNoContent)
}
