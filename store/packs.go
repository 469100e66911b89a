// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/pickr/models"
)

func (s *SQL) CreatePack(ctx context.Context, pack models.Pack) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pack (id, name, description, share_slug, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, pack.ID, pack.Name, pack.Description, pack.ShareSlug, pack.CreatedAt.UTC(), pack.UpdatedAt.UTC())
		if err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return fmt.Errorf("insert pack: %w", err)
		}

		for i, card := range pack.Cards {
			if err := insertCard(ctx, tx, pack.ID, i, card); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertCard(ctx context.Context, tx *sql.Tx, packID string, position int, card models.Card) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO card (id, pack_id, position, content, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, card.ID, packID, position, card.Content, card.ImageURL, card.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (s *SQL) GetPack(ctx context.Context, id string) (models.Pack, error) {
	return s.getPack(ctx, "id", id)
}

func (s *SQL) GetPackBySlug(ctx context.Context, slug string) (models.Pack, error) {
	return s.getPack(ctx, "share_slug", slug)
}

// getPack loads one pack with its cards; column is a constant, never input
func (s *SQL) getPack(ctx context.Context, column, value string) (models.Pack, error) {
	var pack models.Pack
	var slug sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, share_slug, created_at, updated_at
		FROM pack WHERE `+column+` = $1
	`, value).Scan(&pack.ID, &pack.Name, &pack.Description, &slug, &pack.CreatedAt, &pack.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pack{}, ErrNotFound
	}
	if err != nil {
		return models.Pack{}, fmt.Errorf("get pack: %w", err)
	}
	pack.ShareSlug = slug.String

	pack.Cards, err = s.listCards(ctx, pack.ID)
	if err != nil {
		return models.Pack{}, err
	}
	return pack, nil
}

func (s *SQL) listCards(ctx context.Context, packID string) ([]models.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, image_url, created_at
		FROM card WHERE pack_id = $1
		ORDER BY position
	`, packID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.Content, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ListPacks returns pack metadata, newest first. Cards are not loaded.
func (s *SQL) ListPacks(ctx context.Context) ([]models.Pack, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, share_slug, created_at, updated_at
		FROM pack
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}
	defer rows.Close()

	packs := []models.Pack{}
	for rows.Next() {
		var p models.Pack
		var slug sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &slug, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pack: %w", err)
		}
		p.ShareSlug = slug.String
		p.Cards = []models.Card{}
		packs = append(packs, p)
	}
	return packs, rows.Err()
}

func (s *SQL) AddCard(ctx context.Context, packID string, card models.Card) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM pack WHERE id = $1`, packID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check pack: %w", err)
		}

		var sessions int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM ranking_session WHERE pack_id = $1`, packID).Scan(&sessions)
		if err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		if sessions > 0 {
			return fmt.Errorf("%w: pack already has ranking sessions", ErrConflict)
		}

		var position int
		err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM card WHERE pack_id = $1`, packID).Scan(&position)
		if err != nil {
			return fmt.Errorf("next card position: %w", err)
		}

		if err := insertCard(ctx, tx, packID, position, card); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `UPDATE pack SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), packID)
		if err != nil {
			return fmt.Errorf("touch pack: %w", err)
		}
		return nil
	})
}

// DeletePack removes the pack; cards, sessions and results cascade
func (s *SQL) DeletePack(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pack WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pack: %w", err)
	}
	return requireAffected(res, "delete pack")
}
