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

const resultColumns = `id, session_id, pack_id, algorithm, total_comparisons, completion_time_ms, rankings, paco_code, created_at`

func insertResult(ctx context.Context, tx *sql.Tx, r models.RankingResult) error {
	rankings, err := json.Marshal(r.Rankings)
	if err != nil {
		return fmt.Errorf("encode rankings: %w", err)
	}
	var paco sql.NullString
	if r.PacoCode != nil {
		paco = sql.NullString{String: *r.PacoCode, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ranking_result (`+resultColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.ID, r.SessionID, r.PackID, r.Metadata.Algorithm, r.Metadata.TotalComparisons,
		r.Metadata.CompletionTimeMs, string(rankings), paco, r.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: result already stored", ErrConflict)
		}
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (models.RankingResult, error) {
	var (
		r        models.RankingResult
		rankings string
		paco     sql.NullString
	)
	err := row.Scan(&r.ID, &r.SessionID, &r.PackID, &r.Metadata.Algorithm, &r.Metadata.TotalComparisons,
		&r.Metadata.CompletionTimeMs, &rankings, &paco, &r.CreatedAt)
	if err != nil {
		return models.RankingResult{}, err
	}
	if err := json.Unmarshal([]byte(rankings), &r.Rankings); err != nil {
		return models.RankingResult{}, fmt.Errorf("decode rankings for result %s: %w", r.ID, err)
	}
	if r.Rankings == nil {
		r.Rankings = []models.RankedCard{}
	}
	if paco.Valid {
		r.PacoCode = &paco.String
	}
	return r, nil
}

func (s *SQL) getResult(ctx context.Context, column, value string) (models.RankingResult, error) {
	r, err := scanResult(s.db.QueryRowContext(ctx, `
		SELECT `+resultColumns+` FROM ranking_result WHERE `+column+` = $1
	`, value))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RankingResult{}, ErrNotFound
	}
	if err != nil {
		return models.RankingResult{}, fmt.Errorf("get result: %w", err)
	}
	return r, nil
}

func (s *SQL) GetResult(ctx context.Context, id string) (models.RankingResult, error) {
	return s.getResult(ctx, "id", id)
}

func (s *SQL) GetResultBySession(ctx context.Context, sessionID string) (models.RankingResult, error) {
	return s.getResult(ctx, "session_id", sessionID)
}

// ListResultsByPack returns the pack's results, newest first
func (s *SQL) ListResultsByPack(ctx context.Context, packID string) ([]models.RankingResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+resultColumns+` FROM ranking_result
		WHERE pack_id = $1
		ORDER BY created_at DESC, id
	`, packID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	results := []models.RankingResult{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQL) SetPacoCode(ctx context.Context, id, code string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE ranking_result SET paco_code = $1 WHERE id = $2`, code, id)
	if err != nil {
		return fmt.Errorf("set paco code: %w", err)
	}
	return requireAffected(res, "set paco code")
}

func (s *SQL) DeleteResult(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ranking_result WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return requireAffected(res, "delete result")
}
