// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"sort"

	"github.com/danielhkuo/pickr/models"
)

// eliminations maps each card that has lost to the 1-based position of its
// first loss among the informative comparisons
func eliminations(items []models.Card, completed []models.Comparison) map[string]int {
	index := indexOf(items)
	out := make(map[string]int)

	round := 0
	for _, c := range completed {
		o, ok := resolvedIn(index, c)
		if !ok {
			continue
		}
		round++
		if _, seen := out[o.loser]; !seen {
			out[o.loser] = round
		}
	}
	return out
}

// survivors returns the cards that have never lost, in item order
func survivors(items []models.Card, completed []models.Comparison) []models.Card {
	eliminated := eliminations(items, completed)

	remaining := make([]models.Card, 0, len(items))
	for _, card := range items {
		if _, out := eliminated[card.ID]; !out {
			remaining = append(remaining, card)
		}
	}
	return remaining
}

// tournamentNextPair returns the first two surviving cards
func tournamentNextPair(items []models.Card, completed []models.Comparison) []models.Card {
	if len(items) < 2 {
		return nil
	}

	remaining := survivors(items, completed)
	if len(remaining) < 2 {
		return nil
	}
	return []models.Card{remaining[0], remaining[1]}
}

func tournamentIsComplete(items []models.Card, completed []models.Comparison) bool {
	return len(survivors(items, completed)) <= 1
}

// Single elimination needs n-1 comparisons
func tournamentTotal(itemCount int) int {
	if itemCount < 1 {
		return 0
	}
	return itemCount - 1
}

// tournamentRankings orders cards by how long they survived. Cards still in
// the tournament come first, then eliminated cards from the latest
// elimination to the earliest. Wins break ties and item order breaks the rest.
func tournamentRankings(items []models.Card, comparisons []models.Comparison) []models.RankedCard {
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

	eliminated := eliminations(items, comparisons)
	for i := range ranked {
		ranked[i].Score = winRate(ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		ra, outA := eliminated[a.ID]
		rb, outB := eliminated[b.ID]

		// 1. Survivors ahead of eliminated cards
		if outA != outB {
			return !outA
		}

		// 2. Later elimination ranks higher
		if outA && ra != rb {
			return ra > rb
		}

		// 3. More wins
		return a.Wins > b.Wins
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
