// Package sqlite persists cookie jar entries in a SQLite database, one
// row per stored cookie.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shiroyk/cookiejar"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS cookies (
		domain    TEXT NOT NULL,
		path      TEXT NOT NULL,
		name      TEXT NOT NULL,
		value     TEXT NOT NULL,
		secure    INTEGER NOT NULL DEFAULT 0,
		host_only INTEGER NOT NULL DEFAULT 0,
		expires   INTEGER,
		PRIMARY KEY (domain, path, name)
	);
`

// Store saves and loads jar entries in a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the cookie database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db}
	if err = store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

// NewInMemory creates an in-memory store, useful for testing.
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	store := &Store{db: db}
	if err = store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(schema)
	return err
}

// Save rewrites the cookies table from the jar's current entries in a
// single transaction.
func (s *Store) Save(ctx context.Context, jar cookiejar.CookieJar) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM cookies`); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	for _, e := range jar.Entries() {
		var expires sql.NullInt64
		if !e.Expires.IsZero() {
			expires = sql.NullInt64{Int64: e.Expires.Unix(), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cookies (domain, path, name, value, secure, host_only, expires)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.Domain, e.Path, e.Name, e.Value, e.Secure, e.HostOnly, expires,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cookie %q: %w", e.Name, err)
		}
	}
	return tx.Commit()
}

// Load replaces the jar's state with the stored entries.
func (s *Store) Load(ctx context.Context, jar cookiejar.CookieJar) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, path, name, value, secure, host_only, expires
		FROM cookies ORDER BY length(path), domain, path, name`)
	if err != nil {
		return fmt.Errorf("failed to query cookies: %w", err)
	}
	defer rows.Close()

	var entries []cookiejar.Entry
	for rows.Next() {
		var e cookiejar.Entry
		var expires sql.NullInt64
		if err = rows.Scan(&e.Domain, &e.Path, &e.Name, &e.Value, &e.Secure, &e.HostOnly, &expires); err != nil {
			return fmt.Errorf("failed to scan cookie: %w", err)
		}
		if expires.Valid {
			e.Expires = time.Unix(expires.Int64, 0).UTC()
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("failed to read cookies: %w", err)
	}
	return jar.Restore(entries)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
