// Package store is a small gob-encoded key-value store on top of
// SQLite. It backs the game's persisted state: best times, settings,
// difficulty choice and the last custom board.
package store

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrBadBucket = errors.New("bucket name must be letters or underscores")
	ErrNotFound  = errors.New("value not found")
)

type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	bucket string
}

func validBucket(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		ok := 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
		if !ok {
			return false
		}
	}
	return true
}

// New creates a store over an open database, backed by a table named
// bucket. The name is interpolated into DDL, hence the restriction to
// letters and underscores.
func New(db *sql.DB, bucket string) (*Store, error) {
	if !validBucket(bucket) {
		return nil, ErrBadBucket
	}
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + bucket + ` (
	key		TEXT PRIMARY KEY,
	value	BLOB
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create bucket %s: %w", bucket, err)
	}
	return &Store{db: db, bucket: bucket}, nil
}

// Open opens (or creates) the SQLite file at path and returns a store
// over it. Close the returned db when done.
func Open(path, bucket string) (*Store, *sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	s, err := New(db, bucket)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, db, nil
}

// Get decodes the stored value for key into value, which must be a
// pointer. Missing keys yield ErrNotFound; undecodable blobs yield the
// gob error, which callers treat as "use the default".
func (s *Store) Get(key string, value any) error {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT value FROM `+s.bucket+` WHERE key = ?;`, key,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return gob.NewDecoder(bytes.NewReader(blob)).Decode(value)
}

// Set inserts or replaces the value for key.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	_, err := s.db.Exec(`
INSERT INTO `+s.bucket+` (key, value)
VALUES (?, ?)
ON CONFLICT (key)
DO UPDATE SET value = excluded.value;`,
		key, buf.Bytes())
	return err
}

// SetRaw stores bytes without gob encoding. Used by tests to simulate
// corrupt persisted state.
func (s *Store) SetRaw(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
INSERT INTO `+s.bucket+` (key, value)
VALUES (?, ?)
ON CONFLICT (key)
DO UPDATE SET value = excluded.value;`,
		key, blob)
	return err
}

// Delete removes key, whether or not it existed.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM `+s.bucket+` WHERE key = ?;`, key)
	return err
}

func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT count(*) FROM ` + s.bucket + `;`).Scan(&count)
	return count, err
}

func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM ` + s.bucket + `;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
