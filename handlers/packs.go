// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/pickr/auth"
	"github.com/danielhkuo/pickr/cliparse"
	"github.com/danielhkuo/pickr/middleware"
	"github.com/danielhkuo/pickr/models"
	"github.com/danielhkuo/pickr/store"
)

type PackHandler struct {
	repo store.PackRepository
	cfg  cliparse.Config
}

func NewPackHandler(repo store.PackRepository, cfg cliparse.Config) *PackHandler {
	return &PackHandler{repo: repo, cfg: cfg}
}

// CreatePack handles POST /packs
func (h *PackHandler) CreatePack(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := middleware.Validate(req); len(errs) > 0 {
		middleware.ValidationErrorResponse(w, errs)
		return
	}

	now := time.Now().UTC()
	pack := models.Pack{
		ID:          auth.NewID(),
		Name:        req.Name,
		Description: req.Description,
		Cards:       []models.Card{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pack.ShareSlug = auth.GenerateShareSlug(pack.ID, h.cfg.PackSlugSalt)

	if err := h.repo.CreatePack(r.Context(), pack); err != nil {
		storeError(w, err, "Pack")
		return
	}

	slog.Info("pack created", "pack_id", pack.ID, "name", pack.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePackResponse{
		PackID:    pack.ID,
		AdminKey:  auth.GenerateAdminKey(pack.ID, h.cfg.AdminKeySalt),
		ShareSlug: pack.ShareSlug,
	})
}

// ListPacks handles GET /packs
func (h *PackHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.repo.ListPacks(r.Context())
	if err != nil {
		storeError(w, err, "Packs")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, packs)
}

// GetPack handles GET /packs/{id}
func (h *PackHandler) GetPack(w http.ResponseWriter, r *http.Request) {
	pack, err := h.repo.GetPack(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "Pack")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pack)
}

// GetPackBySlug handles GET /p/{slug}
func (h *PackHandler) GetPackBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	pack, err := h.repo.GetPackBySlug(r.Context(), slug)
	if err != nil {
		storeError(w, err, "Pack")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pack)
}

// AddCard handles POST /packs/{id}/cards
// Cards are frozen once the pack has a ranking session.
func (h *PackHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	packID := r.PathValue("id")
	if !requireAdmin(w, r, h.cfg, packID) {
		return
	}

	var req models.AddCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := middleware.Validate(req); len(errs) > 0 {
		middleware.ValidationErrorResponse(w, errs)
		return
	}

	card := models.Card{
		ID:        auth.NewID(),
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.repo.AddCard(r.Context(), packID, card); err != nil {
		storeError(w, err, "Pack")
		return
	}

	slog.Info("card added", "pack_id", packID, "card_id", card.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCardResponse{CardID: card.ID})
}

// DeletePack handles DELETE /packs/{id}
func (h *PackHandler) DeletePack(w http.ResponseWriter, r *http.Request) {
	packID := r.PathValue("id")
	if !requireAdmin(w, r, h.cfg, packID) {
		return
	}

	if err := h.repo.DeletePack(r.Context(), packID); err != nil {
		storeError(w, err, "Pack")
		return
	}

	slog.Info("pack deleted", "pack_id", packID)
	w.WriteHeader(http.StatusNoContent)
}
