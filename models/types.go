// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Ranking algorithm names
const (
	AlgorithmPairwise   = "pairwise"
	AlgorithmTournament = "tournament"
	AlgorithmSwiss      = "swiss"
)

// Share code format version
const PacoVersion = "1.0"

// Request types

type CreatePackRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type AddCardRequest struct {
	Content  string `json:"content" validate:"required,max=200"`
	ImageURL string `json:"image_url" validate:"omitempty,max=2048"`
}

type StartSessionRequest struct {
	ComparisonSize int    `json:"comparison_size"`
	Algorithm      string `json:"algorithm"`
}

// card_ids must be the pair returned by the session's current comparison
type SubmitComparisonRequest struct {
	CardIDs  []string `json:"card_ids" validate:"required,min=2,dive,required"`
	WinnerID string   `json:"winner_id" validate:"required"`
}

type CompareResultsRequest struct {
	ResultIDs []string `json:"result_ids" validate:"required,min=2,dive,required"`
}

// Response types

type CreatePackResponse struct {
	PackID    string `json:"pack_id"`
	AdminKey  string `json:"admin_key"`
	ShareSlug string `json:"share_slug"`
}

type AddCardResponse struct {
	CardID string `json:"card_id"`
}

type SessionResponse struct {
	Session           RankingSession  `json:"session"`
	Progress          RankingProgress `json:"progress"`
	CurrentComparison []Card          `json:"current_comparison,omitempty"`
}

type NextComparisonResponse struct {
	Cards    []Card          `json:"cards"`
	Progress RankingProgress `json:"progress"`
}

type SubmitComparisonResponse struct {
	ComparisonID      string          `json:"comparison_id"`
	Progress          RankingProgress `json:"progress"`
	IsComplete        bool            `json:"is_complete"`
	CurrentComparison []Card          `json:"current_comparison,omitempty"`
	Result            *RankingResult  `json:"result,omitempty"`
}

type ShareResultResponse struct {
	PacoCode  string `json:"paco_code"`
	ShortCode string `json:"short_code"`
	ShareURL  string `json:"share_url"`
}

// Domain types

type Card struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Pack struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ShareSlug   string    `json:"share_slug,omitempty"`
	Cards       []Card    `json:"cards"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// A Comparison is pending until Winner is set. Winner, when present, must be
// one of Cards.
type Comparison struct {
	ID        string    `json:"id"`
	Cards     []Card    `json:"cards"`
	Winner    *Card     `json:"winner,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type RankingSettings struct {
	ComparisonSize int    `json:"comparison_size"`
	Algorithm      string `json:"algorithm"`
}

type RankingSession struct {
	ID          string          `json:"id"`
	PackID      string          `json:"pack_id"`
	Comparisons []Comparison    `json:"comparisons"`
	Settings    RankingSettings `json:"settings"`
	IsComplete  bool            `json:"is_complete"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type RankingProgress struct {
	TotalComparisons     int     `json:"total_comparisons"`
	CompletedComparisons int     `json:"completed_comparisons"`
	PercentComplete      float64 `json:"percent_complete"`
}

type RankedCard struct {
	Card
	Rank   int     `json:"rank"` // 1-indexed ranking
	Score  float64 `json:"score"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Ties   int     `json:"ties"`
}

type ResultMetadata struct {
	TotalComparisons int    `json:"total_comparisons"`
	Algorithm        string `json:"algorithm"`
	CompletionTimeMs int64  `json:"completion_time_ms"`
}

type RankingResult struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	PackID    string         `json:"pack_id"`
	Rankings  []RankedCard   `json:"rankings"`
	Metadata  ResultMetadata `json:"metadata"`
	PacoCode  *string        `json:"paco_code,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// PacoData is the decoded content of a share code
type PacoData struct {
	PackID   string       `json:"pack_id"`
	Rankings []RankedCard `json:"rankings"`
	Metadata PacoMetadata `json:"metadata"`
}

type PacoMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Algorithm string    `json:"algorithm"`
}

type Disagreement struct {
	Card1         RankedCard `json:"card1"`
	Card2         RankedCard `json:"card2"`
	ConflictCount int        `json:"conflict_count"`
}

type ComparisonAnalysis struct {
	Agreement     float64        `json:"agreement"` // 0-1
	Disagreements []Disagreement `json:"disagreements"`
	Consensus     []RankedCard   `json:"consensus"`
}

// Error responses

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}
