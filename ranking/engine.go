// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"math"

	"github.com/danielhkuo/pickr/models"
)

// NextPair returns the next cards to compare, or nil when ranking is done
// or fewer than two cards were given
func NextPair(items []models.Card, completed []models.Comparison, settings models.RankingSettings) []models.Card {
	return Select(settings.Algorithm).NextPair(items, completed)
}

// IsComplete reports whether the session needs no further comparisons
func IsComplete(items []models.Card, completed []models.Comparison, settings models.RankingSettings) bool {
	return Select(settings.Algorithm).IsComplete(items, completed)
}

// CalculateProgress reports how much of the expected work is done
func CalculateProgress(items []models.Card, completed []models.Comparison, settings models.RankingSettings) models.RankingProgress {
	behavior := Select(settings.Algorithm)
	total := behavior.EstimatedTotal(len(items))

	// Only comparisons between cards of this item set count
	index := indexOf(items)
	done := 0
	for _, c := range completed {
		if _, ok := resolvedIn(index, c); ok {
			done++
		}
	}

	percent := 0.0
	if total > 0 {
		percent = math.Min(100, 100*float64(done)/float64(total))
	}

	return models.RankingProgress{
		TotalComparisons:     total,
		CompletedComparisons: done,
		PercentComplete:      percent,
	}
}

// FinalRankings computes rankings with the session's algorithm
func FinalRankings(items []models.Card, comparisons []models.Comparison, settings models.RankingSettings) []models.RankedCard {
	return Select(settings.Algorithm).Rankings(items, comparisons)
}

// CountResolved counts the comparisons that decided a winner between two cards
func CountResolved(comparisons []models.Comparison) int {
	n := 0
	for _, c := range comparisons {
		if _, ok := resolve(c); ok {
			n++
		}
	}
	return n
}

// SamePair reports whether two card lists hold the same pair of cards,
// ignoring order
func SamePair(a, b []models.Card) bool {
	if len(a) != 2 || len(b) != 2 {
		return false
	}
	return newPairKey(a[0].ID, a[1].ID) == newPairKey(b[0].ID, b[1].ID)
}
