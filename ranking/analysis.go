// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"errors"
	"math"
	"sort"

	"github.com/danielhkuo/pickr/models"
)

// ErrNotEnoughResults is returned when fewer than two results are compared
var ErrNotEnoughResults = errors.New("at least 2 results are required for comparison")

// disagreementSpread is the rank difference above which two results are
// said to disagree about a card
const disagreementSpread = 2

// CompareResults builds a consensus ranking across several results of the
// same pack. Only cards present in every result take part.
func CompareResults(results []models.RankingResult) (models.ComparisonAnalysis, error) {
	if len(results) < 2 {
		return models.ComparisonAnalysis{}, ErrNotEnoughResults
	}

	// Collect every ranking of each card, keeping first-seen card order
	var order []string
	byCard := make(map[string][]models.RankedCard)
	for _, result := range results {
		for _, rc := range result.Rankings {
			if _, seen := byCard[rc.ID]; !seen {
				order = append(order, rc.ID)
			}
			byCard[rc.ID] = append(byCard[rc.ID], rc)
		}
	}

	consensus := []models.RankedCard{}
	disagreements := []models.Disagreement{}

	for _, id := range order {
		rankings := byCard[id]
		if len(rankings) != len(results) {
			continue
		}

		var rankSum, scoreSum float64
		var wins, losses int
		minRank, maxRank := rankings[0].Rank, rankings[0].Rank
		for _, rc := range rankings {
			rankSum += float64(rc.Rank)
			scoreSum += rc.Score
			wins += rc.Wins
			losses += rc.Losses
			minRank = min(minRank, rc.Rank)
			maxRank = max(maxRank, rc.Rank)
		}

		n := float64(len(rankings))
		merged := rankings[0]
		merged.Rank = int(math.Floor(rankSum/n + 0.5))
		merged.Score = scoreSum / n
		merged.Wins = wins
		merged.Losses = losses
		consensus = append(consensus, merged)

		if maxRank-minRank <= disagreementSpread {
			continue
		}
		for i := 0; i < len(rankings); i++ {
			for j := i + 1; j < len(rankings); j++ {
				spread := rankings[i].Rank - rankings[j].Rank
				if spread < 0 {
					spread = -spread
				}
				if spread > disagreementSpread {
					disagreements = append(disagreements, models.Disagreement{
						Card1:         rankings[i],
						Card2:         rankings[j],
						ConflictCount: spread,
					})
				}
			}
		}
	}

	sort.SliceStable(consensus, func(i, j int) bool {
		return consensus[i].Rank < consensus[j].Rank
	})

	agreement := 1.0
	cards := len(byCard)
	if possible := cards * (cards - 1) / 2; possible > 0 {
		agreement = math.Max(0, 1-float64(len(disagreements))/float64(possible))
	}

	return models.ComparisonAnalysis{
		Agreement:     agreement,
		Disagreements: disagreements,
		Consensus:     consensus,
	}, nil
}
