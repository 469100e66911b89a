// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists packs, ranking sessions and results.

Handlers depend on the Repository interface; SQL is the implementation over
database/sql and works with both supported drivers.

	repo := store.NewSQL(conn)
	pack, err := repo.GetPack(ctx, packID)

# Errors

  - ErrNotFound: the record does not exist
  - ErrConflict: a uniqueness rule was violated (duplicate ID, a comparison
    seq already taken, a session already complete, cards added to a pack
    that has sessions)

Errors are wrapped, so test with errors.Is.

# Comparison Log

Comparisons are append-only. Each has a seq within its session and
(session_id, seq) is unique, so two writers racing for the same position
cannot both succeed: the loser gets ErrConflict and can reload the session.
The final comparison and the session's result are written in one
transaction by RecordComparison.
*/
package store
