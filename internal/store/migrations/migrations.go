// Package migrations applies the embedded sql/NN_name.sql files to the
// history database in version order.
package migrations

import (
	"cmp"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Migration is one embedded sql/NN_name.sql file.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

func (m Migration) String() string {
	return fmt.Sprintf("%02d_%s", m.Version, m.Description)
}

const schemaTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	applied_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// Load returns the embedded migrations sorted by version. Two files with
// the same version are an error.
func Load() ([]Migration, error) {
	return load(sqlFiles)
}

func load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	all := make([]Migration, 0, len(names))
	for _, name := range names {
		m, err := parseName(path.Base(name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		m.SQL = string(body)
		all = append(all, m)
	}

	slices.SortFunc(all, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(all); i++ {
		if all[i].Version == all[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %s and %s", all[i-1], all[i])
		}
	}
	return all, nil
}

// parseName splits "NN_name.sql" into version and description.
func parseName(file string) (Migration, error) {
	version, description, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || description == "" {
		return Migration{}, errors.New("want NN_description.sql")
	}
	n, err := strconv.Atoi(version)
	if err != nil || n <= 0 {
		return Migration{}, fmt.Errorf("bad version %q", version)
	}
	return Migration{Version: n, Description: description}, nil
}

// Run applies every pending migration, each in its own transaction.
func Run(db *sql.DB) error {
	if _, err := db.Exec(schemaTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	pending, err := Pending(db)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if err := apply(db, m); err != nil {
			return fmt.Errorf("migration %s: %w", m, err)
		}
	}
	return nil
}

func apply(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
		m.Version, m.Description,
	); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}

// CurrentVersion returns the highest applied version, 0 for a database
// that was never migrated.
func CurrentVersion(db *sql.DB) (int, error) {
	var tables int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'",
	).Scan(&tables); err != nil {
		return 0, fmt.Errorf("check schema_migrations: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}

	var version sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
		return 0, fmt.Errorf("current version: %w", err)
	}
	return int(version.Int64), nil
}

// Pending returns the migrations newer than CurrentVersion.
func Pending(db *sql.DB) ([]Migration, error) {
	all, err := Load()
	if err != nil {
		return nil, err
	}
	current, err := CurrentVersion(db)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(m Migration) bool { return m.Version <= current }), nil
}
