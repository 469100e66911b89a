// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

	mux.HandleFunc("GET /packs", middleware.WithLogging(middleware.WithMetrics(handler)))

WithLogging logs completion with method, path, status and duration_ms.
WithMetrics records pickr_http_requests_total and
pickr_http_request_duration_seconds labelled by the matched route pattern.

# Rate Limiting

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.AdminKeySalt)
	mux.HandleFunc("POST /packs", limiter.Limit(handler))

One token bucket (golang.org/x/time/rate) per client, keyed by a salted
hash of the client IP. Rejected requests get 429 with Retry-After. A rate
of 0 disables limiting; the nil *RateLimiter passes everything through.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST, DELETE, OPTIONS with headers Content-Type,
Authorization, X-Admin-Key.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ValidationErrorResponse(w, errs)

Parse and validate request bodies:

	var req models.CreatePackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if errs := middleware.Validate(req); len(errs) > 0 {
		middleware.ValidationErrorResponse(w, errs)
		return
	}

Validate reads go-playground/validator tags and reports fields by their
JSON names ("name is required").

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
