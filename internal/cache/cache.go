// Package cache stores the model analyzer's JSON listing output
// (spec.md §4.10) keyed by a content hash of its inputs, so a CLI
// invocation over an unchanged model/spec pair can skip re-running the
// pipeline (SPEC_FULL.md §A.3).
//
// Grounded on the pack's `leapstack-labs/leapsql` `internal/state`
// package: a SQLite-backed store opened with `Open(path)`, schema
// applied from an embedded `schema.sql` via `InitSchema`, with
// content-hash get/set operations (`GetContentHash`/`SetContentHash`)
// following the same nil-db guard and `fmt.Errorf("%w", ...)` wrapping
// idiom. Library: `modernc.org/sqlite` (already a direct dependency,
// pure Go, registers itself under the "sqlite" driver name) in place of
// leapsql's cgo `mattn/go-sqlite3`.
package cache

import (
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store is a content-hash keyed cache of listing JSON blobs.
type Store struct {
	db   *sql.DB
	path string
}

// New returns an unopened Store.
func New() *Store {
	return &Store{}
}

// Open opens (creating if necessary) the SQLite database at path. Use
// ":memory:" for a throwaway, process-local cache.
func (s *Store) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("cache: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("cache: ping %s: %w", path, err)
	}
	s.db = db
	s.path = path
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// InitSchema applies the embedded schema, idempotently.
func (s *Store) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("cache: database not opened")
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("cache: init schema: %w", err)
	}
	return nil
}

// ContentHash hashes the raw parse-tree and spec-document source bytes
// this listing was built from. Callers compute this once per
// invocation and use it for both Get and Set.
func ContentHash(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached listing JSON for contentHash, or nil, false if
// absent.
func (s *Store) Get(contentHash string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("cache: database not opened")
	}
	var blob []byte
	err := s.db.QueryRow(`SELECT listing_json FROM listings WHERE content_hash = ?`, contentHash).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", contentHash, err)
	}
	return blob, true, nil
}

// Set stores listingJSON under contentHash, overwriting any prior entry
// for the same hash (the listing itself is a pure function of the hash
// input, so a collision can only mean the prior write was stale).
func (s *Store) Set(contentHash string, listingJSON []byte, unixNow int64) error {
	if s.db == nil {
		return fmt.Errorf("cache: database not opened")
	}
	_, err := s.db.Exec(
		`INSERT INTO listings (content_hash, listing_json, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(content_hash) DO UPDATE SET listing_json = excluded.listing_json, created_at = excluded.created_at`,
		contentHash, listingJSON, unixNow,
	)
	if err != nil {
		return fmt.Errorf("cache: set %s: %w", contentHash, err)
	}
	return nil
}
