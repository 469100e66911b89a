// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/pickr/models"
)

func (s *SQL) CreateSession(ctx context.Context, session models.RankingSession) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ranking_session (id, pack_id, comparison_size, algorithm, is_complete, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, session.ID, session.PackID, session.Settings.ComparisonSize, session.Settings.Algorithm,
		session.IsComplete, session.CreatedAt.UTC(), session.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession loads the session with its comparison log in seq order.
// Stored card IDs are revived against the pack's cards.
func (s *SQL) GetSession(ctx context.Context, id string) (models.RankingSession, error) {
	var session models.RankingSession
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pack_id, comparison_size, algorithm, is_complete, created_at, updated_at
		FROM ranking_session WHERE id = $1
	`, id).Scan(&session.ID, &session.PackID, &session.Settings.ComparisonSize, &session.Settings.Algorithm,
		&session.IsComplete, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RankingSession{}, ErrNotFound
	}
	if err != nil {
		return models.RankingSession{}, fmt.Errorf("get session: %w", err)
	}

	cards, err := s.listCards(ctx, session.PackID)
	if err != nil {
		return models.RankingSession{}, err
	}
	byID := make(map[string]models.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	revive := func(cardID string) models.Card {
		if c, ok := byID[cardID]; ok {
			return c
		}
		return models.Card{ID: cardID}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, card_ids, winner_id, created_at
		FROM comparison WHERE session_id = $1
		ORDER BY seq
	`, id)
	if err != nil {
		return models.RankingSession{}, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	session.Comparisons = []models.Comparison{}
	for rows.Next() {
		var (
			c       models.Comparison
			cardIDs string
			winner  sql.NullString
		)
		if err := rows.Scan(&c.ID, &cardIDs, &winner, &c.Timestamp); err != nil {
			return models.RankingSession{}, fmt.Errorf("scan comparison: %w", err)
		}

		var ids []string
		if err := json.Unmarshal([]byte(cardIDs), &ids); err != nil {
			return models.RankingSession{}, fmt.Errorf("decode comparison %s: %w", c.ID, err)
		}
		c.Cards = make([]models.Card, len(ids))
		for i, cardID := range ids {
			c.Cards[i] = revive(cardID)
		}
		if winner.Valid {
			w := revive(winner.String)
			c.Winner = &w
		}
		session.Comparisons = append(session.Comparisons, c)
	}
	if err := rows.Err(); err != nil {
		return models.RankingSession{}, err
	}
	return session, nil
}

func (s *SQL) RecordComparison(ctx context.Context, sessionID string, seq int, c models.Comparison, result *models.RankingResult) error {
	ids := make([]string, len(c.Cards))
	for i, card := range c.Cards {
		ids[i] = card.ID
	}
	cardIDs, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode comparison: %w", err)
	}
	var winner sql.NullString
	if c.Winner != nil {
		winner = sql.NullString{String: c.Winner.ID, Valid: true}
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO comparison (id, session_id, seq, card_ids, winner_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.ID, sessionID, seq, string(cardIDs), winner, c.Timestamp.UTC())
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: comparison %d already recorded", ErrConflict, seq)
			}
			return fmt.Errorf("insert comparison: %w", err)
		}

		if result != nil {
			return completeTx(ctx, tx, *result, seq+1)
		}
		res, err := tx.ExecContext(ctx, `
			UPDATE ranking_session SET updated_at = $1 WHERE id = $2 AND is_complete = $3
		`, c.Timestamp.UTC(), sessionID, false)
		if err != nil {
			return fmt.Errorf("touch session: %w", err)
		}
		if err := requireAffected(res, "touch session"); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: session is complete", ErrConflict)
			}
			return err
		}
		return nil
	})
}

func (s *SQL) CompleteSession(ctx context.Context, result models.RankingResult, comparisons int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return completeTx(ctx, tx, result, comparisons)
	})
}

// completeTx flips the session to complete exactly once and stores its
// result. The flip only happens while the log still holds exactly
// comparisons entries.
func completeTx(ctx context.Context, tx *sql.Tx, result models.RankingResult, comparisons int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE ranking_session SET is_complete = $1, updated_at = $2
		WHERE id = $3 AND is_complete = $4
		AND (SELECT COUNT(*) FROM comparison WHERE session_id = $5) = $6
	`, true, result.CreatedAt.UTC(), result.SessionID, false, result.SessionID, comparisons)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if err := requireAffected(res, "complete session"); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: session missing, already complete or changed", ErrConflict)
		}
		return err
	}
	return insertResult(ctx, tx, result)
}
