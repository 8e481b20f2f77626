// Package cache provides a small sqlite-backed response cache. It exists so
// repeated address lookups don't re-hit Nominatim, whose usage policy asks
// clients to cache results. Venue and travel-time responses are never
// stored here; those stay fresh per search cycle.
package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS lookups (
    query     TEXT PRIMARY KEY,
    payload   BLOB NOT NULL,
    cached_at INTEGER NOT NULL
);
`

// Store is a TTL cache keyed by query string.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database and initializes the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the cached payload for query if it is younger than maxAge.
func (s *Store) Get(query string, maxAge time.Duration) ([]byte, bool) {
	var payload []byte
	var cachedAt int64
	err := s.db.QueryRow(
		`SELECT payload, cached_at FROM lookups WHERE query = ?`, query,
	).Scan(&payload, &cachedAt)
	if err != nil {
		return nil, false
	}
	if time.Since(time.Unix(cachedAt, 0)) > maxAge {
		return nil, false
	}
	return payload, true
}

// Put stores or replaces the payload for query.
func (s *Store) Put(query string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO lookups (query, payload, cached_at) VALUES (?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at`,
		query, payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
