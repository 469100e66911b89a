// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pickr API.

# Route Registration

	mux := router.NewRouter(repo, cfg)

Every API route is wrapped with request logging and metrics. Write routes
(POST, DELETE) also pass through the per-client rate limiter.

# Endpoints

Operations:

	GET /health  - 200 OK, or 503 when the database is unreachable
	GET /metrics - Prometheus exposition

Packs (X-Admin-Key required where noted):

	POST   /packs            - Create pack, returns admin key
	GET    /packs            - List packs
	GET    /packs/{id}       - Pack with cards
	POST   /packs/{id}/cards - Add card (admin; 409 once ranked)
	DELETE /packs/{id}       - Delete pack (admin)
	GET    /p/{slug}         - Pack by share slug

Ranking sessions:

	POST /packs/{id}/sessions       - Start session
	GET  /sessions/{id}             - Session, progress, current pair
	GET  /sessions/{id}/next        - Current pair (204 when done)
	POST /sessions/{id}/comparisons - Record a winner
	GET  /sessions/{id}/progress    - Progress
	GET  /sessions/{id}/rankings    - Provisional rankings
	POST /sessions/{id}/complete    - Finish early

Results:

	GET    /results/{id}       - Stored result
	GET    /packs/{id}/results - Results for a pack
	POST   /results/{id}/share - Create share code
	GET    /shared?code=...    - Decode share code
	POST   /results/compare    - Agreement across results
	DELETE /results/{id}       - Delete result (admin of its pack)
*/
package router
