// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pickr/auth"
	"github.com/danielhkuo/pickr/cliparse"
	"github.com/danielhkuo/pickr/middleware"
	"github.com/danielhkuo/pickr/store"
)

// storeError maps repository errors to responses. what names the record
// in the 404 message ("Pack").
func storeError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("database error", "record", what, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// requireAdmin checks X-Admin-Key against the pack and writes 401 on failure
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config, packID string) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(packID, adminKey, cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}
