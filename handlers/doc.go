// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pickr API.

# Handler Types

Each handler is a struct with repository and config dependencies:

  - PackHandler: Pack and card authoring
  - SessionHandler: Ranking sessions and comparisons
  - ResultsHandler: Stored results, share codes and result comparison

Handlers are created via constructor functions that accept a store
repository and Config:

	packHandler := handlers.NewPackHandler(repo, cfg)

# Pack Authoring

	POST   /packs              → CreatePack (returns admin_key and share_slug)
	GET    /packs              → ListPacks
	GET    /packs/{id}         → GetPack
	GET    /p/{slug}           → GetPackBySlug
	POST   /packs/{id}/cards   → AddCard (until the first session starts)
	DELETE /packs/{id}         → DeletePack

Admin operations require the X-Admin-Key header.

# Ranking Flow

	POST /packs/{id}/sessions       → StartSession (pairwise, tournament or swiss)
	GET  /sessions/{id}             → GetSession (includes the current pair)
	GET  /sessions/{id}/next        → NextComparison (204 when done)
	POST /sessions/{id}/comparisons → SubmitComparison
	GET  /sessions/{id}/progress    → GetProgress
	GET  /sessions/{id}/rankings    → GetRankings (provisional)
	POST /sessions/{id}/complete    → CompleteSession (stop early)

The ranking package decides which pair comes next. SubmitComparison
accepts only that pair; anything else is a 409. The comparison that
completes a session stores its result in the same transaction.

# Results

	GET    /results/{id}        → GetResult
	GET    /packs/{id}/results  → ListPackResults
	POST   /results/{id}/share  → ShareResult (paco code and link)
	GET    /shared?code=...     → GetShared
	POST   /results/compare     → CompareResults
	DELETE /results/{id}        → DeleteResult (pack admin key)

Share codes are self-contained; GetShared never touches the database.
*/
package handlers
