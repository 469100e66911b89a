// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file path or PostgreSQL connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - AdminKeySalt: Secret for pack admin key HMAC (required)
  - PackSlugSalt: Secret for pack share slug generation (required)
  - BaseURL: Public origin used in share links (default: http://localhost:3000)
  - LogLevel, LogFormat: slog level and handler (default: info, text)
  - RateLimit: Write requests per second (default: 20, 0 disables)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--base-url    Public base URL
	--admin-salt  Admin key salt
	--slug-salt   Pack slug salt
	--log-level   Log level
	--log-format  Log format
	--rate-limit  Write requests per second

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	BASE_URL       → --base-url
	ADMIN_KEY_SALT → --admin-salt
	PACK_SLUG_SALT → --slug-salt
	LOG_LEVEL      → --log-level
	LOG_FORMAT     → --log-format
	RATE_LIMIT     → --rate-limit

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so its values act as environment
variables.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - ADMIN_KEY_SALT must be provided
  - PACK_SLUG_SALT must be provided
*/
package cliparse
