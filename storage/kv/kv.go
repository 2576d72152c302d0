// Package kv implements the client's durable storage: a single-table
// key/value store persisted under the app data dir, surviving restarts
// within one profile.
package kv

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("key not found")

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the store file under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	return open(filepath.Join(dataDir, "elimu.db"))
}

// OpenPath opens the store at an explicit file path.
func OpenPath(path string) (*Store, error) {
	return open(path)
}

func open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}
	// a single writer keeps "database is locked" errors away
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating kv table")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting %q", key)
	}
	return value, nil
}

// Set persists value under key, replacing any previous value.
func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	return errors.Wrapf(err, "setting %q", key)
}

// SetMulti persists all pairs in a single transaction: either every
// pair is written or none is.
func (s *Store) SetMulti(pairs map[string][]byte) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	for key, value := range pairs {
		if _, err = tx.Exec(
			`INSERT INTO kv (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "setting %q", key)
		}
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return errors.Wrapf(err, "deleting %q", key)
}

// DeleteMulti removes all keys in a single transaction.
func (s *Store) DeleteMulti(keys ...string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	for _, key := range keys {
		if _, err = tx.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "deleting %q", key)
		}
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}
