// Package db owns the SQLite connection and schema migrations shared by
// internal/refund, internal/tripscore, and internal/tripstore. Each of
// those packages defines its own tables and queries; this package only
// opens the connection, applies pragmas, and runs migrations.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "modernc.org/sqlite"

	"github.com/Driiva/Driiva/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a *sql.DB opened against the project's SQLite schema.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the SQLite database at path, applies
// the pragmas this codebase always applies, and runs any pending
// migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	d := &DB{sqlDB}
	if err := d.applyPragmas(); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.MigrateUp(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (db *DB) applyPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}
	return nil
}

// MigrationsFS returns the subtree of embedded migration files, rooted so
// the iofs source driver sees bare filenames.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		monitoring.Logf("db: embedded migrations subtree missing: %v", err)
		return migrationsFS
	}
	return sub
}
