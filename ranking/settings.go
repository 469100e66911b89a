// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/pickr/models"
)

var validate = validator.New()

// ValidationResult holds human-readable settings problems
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateSettings checks settings against the number of cards in a pack.
// Callers run it before starting a session; the engine does not enforce it.
func ValidateSettings(settings models.RankingSettings, itemCount int) ValidationResult {
	errs := []string{}

	if err := validate.Var(settings.ComparisonSize, "min=2"); err != nil {
		errs = append(errs, "Comparison size must be at least 2")
	}

	if err := validate.Var(settings.ComparisonSize, "max="+strconv.Itoa(itemCount)); err != nil {
		errs = append(errs, "Comparison size cannot be larger than the number of cards")
	}

	if err := validate.Var(itemCount, "min=2"); err != nil {
		errs = append(errs, "At least 2 cards are required for ranking")
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// DefaultSettings returns pairwise comparisons of two cards
func DefaultSettings() models.RankingSettings {
	return models.RankingSettings{
		ComparisonSize: 2,
		Algorithm:      models.AlgorithmPairwise,
	}
}

// DefaultComparisonTime is the assumed time a user spends on one comparison
const DefaultComparisonTime = 5 * time.Second

// SessionEstimate is the expected length of a ranking session
type SessionEstimate struct {
	EstimatedComparisons int           `json:"estimated_comparisons"`
	EstimatedTime        time.Duration `json:"estimated_time"`
	Formatted            string        `json:"formatted"`
}

// EstimateSessionTime projects how long ranking cardCount cards will take.
// A non-positive perComparison uses DefaultComparisonTime.
func EstimateSessionTime(cardCount int, settings models.RankingSettings, perComparison time.Duration) SessionEstimate {
	if perComparison <= 0 {
		perComparison = DefaultComparisonTime
	}

	comparisons := Select(settings.Algorithm).EstimatedTotal(cardCount)
	total := time.Duration(comparisons) * perComparison

	minutes := int(total / time.Minute)
	seconds := int((total % time.Minute) / time.Second)

	formatted := ""
	if minutes > 0 {
		formatted = fmt.Sprintf("%dm ", minutes)
	}
	formatted += fmt.Sprintf("%ds", seconds)

	return SessionEstimate{
		EstimatedComparisons: comparisons,
		EstimatedTime:        total,
		Formatted:            formatted,
	}
}

// FormatComparison renders a comparison as "A vs B (Winner: A)"
func FormatComparison(c models.Comparison) string {
	names := make([]string, len(c.Cards))
	for i, card := range c.Cards {
		names[i] = card.Content
	}

	out := strings.Join(names, " vs ")
	if c.Winner != nil {
		out += fmt.Sprintf(" (Winner: %s)", c.Winner.Content)
	}
	return out
}
