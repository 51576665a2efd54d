package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fwojciec/webseed"
)

// Compile-time interface verification.
var _ webseed.Cache = (*Cache)(nil)

// Cache implements webseed.Cache using SQLite. Documents are stored as
// JSON under their canonical key; expiry is evaluated on read and
// expired rows are reaped lazily on the next write.
type Cache struct {
	db *DB
}

// NewCache creates a new Cache backed by the given database.
func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// Get retrieves the entry for the canonical key. Missing and expired
// entries both return ENOTFOUND, so callers treat them identically as
// misses.
func (c *Cache) Get(ctx context.Context, key string) (*webseed.CacheEntry, error) {
	var entry webseed.CacheEntry
	var document, fetchedAt string
	var ttlSeconds int64

	err := c.db.QueryRowContext(ctx, `
		SELECT key, document, fetched_at, ttl_seconds
		FROM cache_entries
		WHERE key = ?
	`, key).Scan(&entry.Key, &document, &fetchedAt, &ttlSeconds)

	if err == sql.ErrNoRows {
		return nil, webseed.Errorf(webseed.ENOTFOUND, "cache entry not found")
	}
	if err != nil {
		return nil, err
	}

	entry.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, webseed.Errorf(webseed.EINTERNAL, "corrupt fetched_at for %q: %v", key, err)
	}
	entry.TTL = time.Duration(ttlSeconds) * time.Second

	if entry.Expired(time.Now().UTC()) {
		return nil, webseed.Errorf(webseed.ENOTFOUND, "cache entry expired")
	}

	var doc webseed.Document
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return nil, webseed.Errorf(webseed.EINTERNAL, "corrupt cache entry for %q: %v", key, err)
	}
	entry.Document = &doc

	return &entry, nil
}

// Put stores the entry, replacing any prior document under the same key
// and resetting its FetchedAt. Rows whose TTL has elapsed are deleted
// on the way in; there is no background sweeper.
func (c *Cache) Put(ctx context.Context, entry *webseed.CacheEntry) error {
	if entry.Key == "" {
		return webseed.Errorf(webseed.EINVALID, "cache key required")
	}
	if entry.Document == nil {
		return webseed.Errorf(webseed.EINVALID, "cache document required")
	}

	entry.FetchedAt = time.Now().UTC()

	document, err := json.Marshal(entry.Document)
	if err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, `
		DELETE FROM cache_entries
		WHERE ttl_seconds > 0
		  AND datetime(fetched_at, '+' || ttl_seconds || ' seconds') <= datetime('now')
	`); err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cache_entries (key, document, fetched_at, ttl_seconds)
		VALUES (?, ?, ?, ?)
	`, entry.Key, string(document), entry.FetchedAt.Format(time.RFC3339), int64(entry.TTL/time.Second))

	return err
}

// Clear removes every cache entry.
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM cache_entries")
	return err
}

// Count returns the number of stored entries, expired rows included.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cache_entries").Scan(&n)
	return n, err
}
