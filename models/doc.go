// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePackRequest: name, description
  - AddCardRequest: content, image_url
  - StartSessionRequest: comparison_size, algorithm
  - SubmitComparisonRequest: card_ids, winner_id
  - CompareResultsRequest: result_ids

Requests carry validator tags checked by middleware.Validate.

# Response Types

  - CreatePackResponse: pack_id, admin_key, share_slug
  - AddCardResponse: card_id
  - SessionResponse: session, progress, current_comparison
  - SubmitComparisonResponse: progress, next comparison or final result
  - ShareResultResponse: paco_code, short_code, share_url
  - ErrorResponse / ValidationErrorResponse

# Domain Types

  - Card: one thing being ranked (text + optional image URL)
  - Pack: a named collection of cards
  - Comparison: 2+ cards shown together with an optional winner
  - RankingSettings: comparison size and algorithm, fixed per session
  - RankingSession: append-only comparison history for one pack
  - RankedCard: a card annotated with rank, score, wins, losses, ties
  - RankingResult: stored final rankings of a session
  - PacoData: decoded share code content
  - ComparisonAnalysis: consensus across several results

# Constants

Algorithms:

	AlgorithmPairwise   = "pairwise"
	AlgorithmTournament = "tournament"
	AlgorithmSwiss      = "swiss"
*/
package models
