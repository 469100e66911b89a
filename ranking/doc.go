// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ranking implements the pairwise ranking engine.

Every function is pure: it takes the pack's cards and the full comparison
history and returns a fresh value. Nothing is cached between calls, so the
engine can serve any number of sessions concurrently as long as each
session's history has one writer.

# Algorithms

Select maps a settings algorithm name to a Behavior:

  - pairwise: round robin over every unordered pair, N*(N-1)/2 comparisons
  - tournament: single elimination, N-1 comparisons
  - swiss: runs as pairwise

# Session Flow

	pair := ranking.NextPair(cards, history, settings)
	// ... user picks a winner, caller appends the comparison ...
	if ranking.IsComplete(cards, history, settings) {
		rankings := ranking.FinalRankings(cards, history, settings)
	}

NextPair returns nil exactly when IsComplete reports true.

# Scoring

CalculateRankings counts a win and a loss for each comparison of two cards
with a winner among them. Anything else is skipped. Score is the win rate,
cards sort by score then wins, and ranks run 1..N by position with no shared
ranks.

# Settings

	result := ranking.ValidateSettings(settings, len(cards))
	if !result.IsValid {
		// result.Errors holds display messages
	}
*/
package ranking
