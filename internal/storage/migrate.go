package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// MigrateUp applies every embedded migration that has not been recorded yet,
// in version order.
func MigrateUp(db *sql.DB) error {
	versions, err := migrationVersions()
	if err != nil {
		return err
	}
	applied, err := AppliedMigrations(db)
	if err != nil {
		return err
	}
	for _, v := range versions {
		if slices.Contains(applied, v) {
			continue
		}
		if err := runMigration(db, v, ".up.sql", `INSERT INTO schema_migrations(version) VALUES (?)`); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts every recorded migration, newest first.
func MigrateDown(db *sql.DB) error {
	applied, err := AppliedMigrations(db)
	if err != nil {
		return err
	}
	for i := len(applied) - 1; i >= 0; i-- {
		if err := runMigration(db, applied[i], ".down.sql", `DELETE FROM schema_migrations WHERE version = ?`); err != nil {
			return err
		}
	}
	return nil
}

// AppliedMigrations lists recorded migration versions in ascending order.
func AppliedMigrations(db *sql.DB) ([]string, error) {
	if _, err := db.Exec(migrationsTable); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}
	rows, err := db.Query(`SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func migrationVersions() ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, name := range entries {
		out = append(out, strings.TrimSuffix(path.Base(name), ".up.sql"))
	}
	slices.Sort(out)
	return out, nil
}

func runMigration(db *sql.DB, version, suffix, record string) error {
	name := "migrations/" + version + suffix
	body, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if _, err := tx.Exec(record, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}
	return nil
}
