// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pickr/cliparse"
	"github.com/danielhkuo/pickr/handlers"
	"github.com/danielhkuo/pickr/metrics"
	"github.com/danielhkuo/pickr/middleware"
	"github.com/danielhkuo/pickr/store"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(repo store.Repository, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	packHandler := handlers.NewPackHandler(repo, cfg)
	sessionHandler := handlers.NewSessionHandler(repo, cfg)
	resultsHandler := handlers.NewResultsHandler(repo, cfg)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.AdminKeySalt)

	read := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(h))
	}
	write := func(h http.HandlerFunc) http.HandlerFunc {
		return read(limiter.Limit(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if p, ok := repo.(pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				slog.Warn("health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("database unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Packs (writes to an existing pack require X-Admin-Key)
	mux.HandleFunc("POST /packs", write(packHandler.CreatePack))
	mux.HandleFunc("GET /packs", read(packHandler.ListPacks))
	mux.HandleFunc("GET /packs/{id}", read(packHandler.GetPack))
	mux.HandleFunc("POST /packs/{id}/cards", write(packHandler.AddCard))
	mux.HandleFunc("DELETE /packs/{id}", write(packHandler.DeletePack))
	mux.HandleFunc("GET /p/{slug}", read(packHandler.GetPackBySlug))

	// Ranking sessions
	mux.HandleFunc("POST /packs/{id}/sessions", write(sessionHandler.StartSession))
	mux.HandleFunc("GET /sessions/{id}", read(sessionHandler.GetSession))
	mux.HandleFunc("GET /sessions/{id}/next", read(sessionHandler.NextComparison))
	mux.HandleFunc("POST /sessions/{id}/comparisons", write(sessionHandler.SubmitComparison))
	mux.HandleFunc("GET /sessions/{id}/progress", read(sessionHandler.GetProgress))
	mux.HandleFunc("GET /sessions/{id}/rankings", read(sessionHandler.GetRankings))
	mux.HandleFunc("POST /sessions/{id}/complete", write(sessionHandler.CompleteSession))

	// Results and sharing
	mux.HandleFunc("GET /results/{id}", read(resultsHandler.GetResult))
	mux.HandleFunc("GET /packs/{id}/results", read(resultsHandler.ListPackResults))
	mux.HandleFunc("POST /results/{id}/share", write(resultsHandler.ShareResult))
	mux.HandleFunc("GET /shared", read(resultsHandler.GetShared))
	mux.HandleFunc("POST /results/compare", write(resultsHandler.CompareResults))
	mux.HandleFunc("DELETE /results/{id}", write(resultsHandler.DeleteResult))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pickr API v1"))
	})

	return mux
}
