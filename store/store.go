// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/pickr/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type PackRepository interface {
	CreatePack(ctx context.Context, pack models.Pack) error
	GetPack(ctx context.Context, id string) (models.Pack, error)
	GetPackBySlug(ctx context.Context, slug string) (models.Pack, error)
	ListPacks(ctx context.Context) ([]models.Pack, error)
	// AddCard appends a card to the pack. Packs with sessions are frozen
	// and return ErrConflict.
	AddCard(ctx context.Context, packID string, card models.Card) error
	DeletePack(ctx context.Context, id string) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session models.RankingSession) error
	GetSession(ctx context.Context, id string) (models.RankingSession, error)
	// RecordComparison appends c at position seq of the session log. When
	// result is non-nil the session is also marked complete and the result
	// stored, in the same transaction. A taken seq returns ErrConflict.
	RecordComparison(ctx context.Context, sessionID string, seq int, c models.Comparison, result *models.RankingResult) error
	// CompleteSession marks the session complete and stores its result.
	// comparisons is the log length the result was computed from; an already
	// complete session or a log that has since grown returns ErrConflict.
	CompleteSession(ctx context.Context, result models.RankingResult, comparisons int) error
}

type ResultRepository interface {
	GetResult(ctx context.Context, id string) (models.RankingResult, error)
	GetResultBySession(ctx context.Context, sessionID string) (models.RankingResult, error)
	ListResultsByPack(ctx context.Context, packID string) ([]models.RankingResult, error)
	SetPacoCode(ctx context.Context, id, code string) error
	DeleteResult(ctx context.Context, id string) error
}

type Repository interface {
	PackRepository
	SessionRepository
	ResultRepository
}

// SQL implements Repository over database/sql. Queries use $N placeholders
// in ascending order so they run on both lib/pq and modernc.org/sqlite.
type SQL struct {
	db *sql.DB
}

var _ Repository = (*SQL)(nil)

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// Ping reports whether the database is reachable
func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQL) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// extended codes off
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// requireAffected turns a zero-row update or delete into ErrNotFound
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
