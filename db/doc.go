// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Opening

Open migrates the schema and returns a pooled connection:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

Two backends are supported:

  - sqlite: DatabaseURL is a file path (modernc.org/sqlite, pure Go).
    Foreign keys, WAL and a busy timeout are enabled, and the pool is
    capped at one connection.
  - postgres: DatabaseURL is a libpq connection URL (github.com/lib/pq).

# Migrations

Schema changes live in migrations/ as numbered golang-migrate files and are
embedded in the binary. Migrate is safe to call on every start; an
up-to-date database is a no-op.

The SQL is written to run unchanged on both backends: ids are TEXT,
JSON payloads are TEXT, and timestamps are always supplied by the
application.

# Tables

  - pack: Pack metadata and share slug
  - card: Cards per pack, ordered by position
  - ranking_session: Session settings and completion flag
  - comparison: Append-only comparison log, ordered by seq
  - ranking_result: Final rankings per session (JSON) and share code

# Relationships

	pack 1──* card
	pack 1──* ranking_session
	ranking_session 1──* comparison
	ranking_session 1──1 ranking_result

All foreign keys use ON DELETE CASCADE.

# Indexes

  - pack.share_slug (unique)
  - card.(pack_id, position) (unique)
  - comparison.(session_id, seq) (unique)
  - ranking_result.session_id (unique)
*/
package db
