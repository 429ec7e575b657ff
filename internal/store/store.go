package store

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/store/migrations"
)

const memoryPath = ":memory:"

// Store wraps a SQLite database connection for command history.
// It implements the domain.HistoryStore interface.
type Store struct {
	db   *sql.DB
	path string
}

// New creates a new Store with the given database path.
// Runs migrations automatically.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to ":memory:" is a different database.
	if path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err = configureSQLite(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// NewWithDB creates a Store from an existing database connection.
// Useful for testing with pre-configured databases.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for NewWithDB stores.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func configureSQLite(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// setDBPermissions sets restrictive file permissions on the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == memoryPath {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Record adds an entry. A zero Timestamp is stamped with the current time.
func (s *Store) Record(entry domain.HistoryEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO command_history
		 (session_id, command, result, handled, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.Command,
		entry.Result,
		entry.Handled,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less returns every entry.
func (s *Store) Recent(limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT
			id,
			session_id,
			command,
			result,
			handled,
			timestamp
		FROM command_history
		ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoryEntry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// Count returns the number of recorded entries.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM command_history").Scan(&n)
	return n, err
}

// Clear deletes every entry.
func (s *Store) Clear() (int64, error) {
	result, err := s.db.Exec("DELETE FROM command_history")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanEntry(rows *sql.Rows) (domain.HistoryEntry, error) {
	var (
		e  domain.HistoryEntry
		ts string
	)

	if err := rows.Scan(
		&e.ID,
		&e.SessionID,
		&e.Command,
		&e.Result,
		&e.Handled,
		&ts,
	); err != nil {
		return domain.HistoryEntry{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}
	e.Timestamp = t

	return e, nil
}

// Verify Store implements domain.HistoryStore
var _ domain.HistoryStore = (*Store)(nil)
