// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open applies pending migrations and returns a ready connection pool.
func Open(dbType, url string) (*sql.DB, error) {
	if err := Migrate(dbType, url); err != nil {
		return nil, err
	}

	var (
		conn *sql.DB
		err  error
	)
	switch dbType {
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
	case TypeSQLite:
		conn, err = sql.Open("sqlite", sqliteDSN(url))
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbType, err)
	}

	if dbType == TypeSQLite {
		// Single writer; WAL still lets readers proceed.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbType, err)
	}
	return conn, nil
}

// Migrate runs every up migration not yet applied. A database that is
// already current is not an error.
func Migrate(dbType, url string) error {
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("access migrations: %w", err)
	}
	src, err := iofs.New(dir, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	target, err := migrateURL(dbType, url)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, target)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func migrateURL(dbType, url string) (string, error) {
	switch dbType {
	case TypePostgres:
		return url, nil
	case TypeSQLite:
		path := filepath.ToSlash(strings.TrimPrefix(url, "file:"))
		if filepath.IsAbs(url) && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "sqlite://" + path, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

func sqliteDSN(path string) string {
	path = strings.TrimPrefix(path, "file:")
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
