// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import "github.com/danielhkuo/pickr/models"

// Behavior is the set of pure functions that make up one ranking algorithm
type Behavior struct {
	Algorithm      string
	NextPair       func(items []models.Card, completed []models.Comparison) []models.Card
	Rankings       func(items []models.Card, comparisons []models.Comparison) []models.RankedCard
	IsComplete     func(items []models.Card, completed []models.Comparison) bool
	EstimatedTotal func(itemCount int) int
}

var pairwiseBehavior = Behavior{
	Algorithm:      models.AlgorithmPairwise,
	NextPair:       pairwiseNextPair,
	Rankings:       CalculateRankings,
	IsComplete:     pairwiseIsComplete,
	EstimatedTotal: pairwiseTotal,
}

var tournamentBehavior = Behavior{
	Algorithm:      models.AlgorithmTournament,
	NextPair:       tournamentNextPair,
	Rankings:       tournamentRankings,
	IsComplete:     tournamentIsComplete,
	EstimatedTotal: tournamentTotal,
}

// Select maps an algorithm name to its behavior.
// Swiss has no pairing logic of its own and runs as pairwise, as does any
// unknown name.
func Select(name string) Behavior {
	switch name {
	case models.AlgorithmTournament:
		return tournamentBehavior
	case models.AlgorithmSwiss, models.AlgorithmPairwise:
		return pairwiseBehavior
	default:
		return pairwiseBehavior
	}
}

// outcome is the winner and loser of a resolved two-card comparison
type outcome struct {
	winner string
	loser  string
}

// resolve returns the outcome of a comparison. Comparisons without a winner,
// with other than two participants, or whose winner did not take part are
// not informative and report false.
func resolve(c models.Comparison) (outcome, bool) {
	if c.Winner == nil || len(c.Cards) != 2 {
		return outcome{}, false
	}

	a, b := c.Cards[0].ID, c.Cards[1].ID
	if a == b {
		return outcome{}, false
	}

	switch c.Winner.ID {
	case a:
		return outcome{winner: a, loser: b}, true
	case b:
		return outcome{winner: b, loser: a}, true
	}
	return outcome{}, false
}

// resolvedIn returns the outcome of a comparison only when both participants
// belong to the item set
func resolvedIn(index map[string]int, c models.Comparison) (outcome, bool) {
	o, ok := resolve(c)
	if !ok {
		return outcome{}, false
	}
	if _, ok := index[o.winner]; !ok {
		return outcome{}, false
	}
	if _, ok := index[o.loser]; !ok {
		return outcome{}, false
	}
	return o, true
}

// indexOf maps card IDs to their position in the item order
func indexOf(items []models.Card) map[string]int {
	index := make(map[string]int, len(items))
	for i, card := range items {
		index[card.ID] = i
	}
	return index
}

// winRate is wins over games played, 0 for a card that never played
func winRate(rc models.RankedCard) float64 {
	games := rc.Wins + rc.Losses + rc.Ties
	if games == 0 {
		return 0
	}
	return float64(rc.Wins) / float64(games)
}

// newRankedCards builds zeroed tallies in item order
func newRankedCards(items []models.Card) []models.RankedCard {
	ranked := make([]models.RankedCard, len(items))
	for i, card := range items {
		ranked[i] = models.RankedCard{Card: card}
	}
	return ranked
}
