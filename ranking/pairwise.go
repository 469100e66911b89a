// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"sort"

	"github.com/danielhkuo/pickr/models"
)

// pairKey identifies an unordered pair of cards. The smaller ID always comes
// first so presentation order never creates a second key for the same pair.
type pairKey struct {
	lo string
	hi string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// resolvedPairs collects the pairs that already have a winner
func resolvedPairs(completed []models.Comparison) map[pairKey]struct{} {
	done := make(map[pairKey]struct{}, len(completed))
	for _, c := range completed {
		o, ok := resolve(c)
		if !ok {
			continue
		}
		done[newPairKey(o.winner, o.loser)] = struct{}{}
	}
	return done
}

// pairwiseNextPair scans every i<j pair in item order and returns the first
// one without a result
func pairwiseNextPair(items []models.Card, completed []models.Comparison) []models.Card {
	if len(items) < 2 {
		return nil
	}

	done := resolvedPairs(completed)
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if _, ok := done[newPairKey(items[i].ID, items[j].ID)]; !ok {
				return []models.Card{items[i], items[j]}
			}
		}
	}

	// All pairs have been compared
	return nil
}

// pairwiseIsComplete reports whether every pair of the item set is resolved.
// It walks the same pairs as pairwiseNextPair so the two always agree.
func pairwiseIsComplete(items []models.Card, completed []models.Comparison) bool {
	done := resolvedPairs(completed)

	covered := 0
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if _, ok := done[newPairKey(items[i].ID, items[j].ID)]; ok {
				covered++
			}
		}
	}

	return covered >= pairwiseTotal(len(items))
}

func pairwiseTotal(itemCount int) int {
	if itemCount < 2 {
		return 0
	}
	return itemCount * (itemCount - 1) / 2
}

// CalculateRankings tallies wins and losses over all informative comparisons
// and orders the cards by win rate, then by wins. Cards with equal score and
// wins keep their item order and still receive distinct ranks.
func CalculateRankings(items []models.Card, comparisons []models.Comparison) []models.RankedCard {
	index := indexOf(items)
	ranked := newRankedCards(items)

	for _, c := range comparisons {
		o, ok := resolvedIn(index, c)
		if !ok {
			continue
		}
		ranked[index[o.winner]].Wins++
		ranked[index[o.loser]].Losses++
	}

	for i := range ranked {
		ranked[i].Score = winRate(ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		// 1. Higher win rate
		if a.Score != b.Score {
			return a.Score > b.Score
		}

		// 2. More wins
		return a.Wins > b.Wins
	})

	for i := range ranked {
		ranked[i].Rank = i + 1 // 1-indexed ranking
	}

	return ranked
}
