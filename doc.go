// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pickr API server.

Pickr ranks a pack of cards by asking one question at a time: which of these
two do you prefer? Pairwise sessions compare every pair; tournament sessions
run single elimination. Finished rankings can be shared as self-contained
paco codes and compared across sessions.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first if present.

	DATABASE_URL=pickr.db ADMIN_KEY_SALT=... PACK_SLUG_SALT=... go run .

Or with flags, against PostgreSQL:

	go run . -p 3318 -t postgres -d "postgres://..." --admin-salt ... --slug-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - PACK_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (--base-url): Origin used in share links
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output
  - RATE_LIMIT (--rate-limit): Write requests per second per client

# Architecture

  - handlers: HTTP request handlers (packs, sessions, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, rate limiting, validation, JSON helpers
  - ranking: Pair selection, completion and ranking algorithms
  - paco: Share code encoding
  - store: Repository over database/sql
  - db: Connections and embedded migrations
  - metrics: Prometheus collectors
  - models: Request, response and domain types
  - auth: IDs, admin keys, share slugs and client IP hashing
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
