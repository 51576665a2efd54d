package webseed

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// CacheEntry is one cached normalized document.
type CacheEntry struct {
	// Key is the canonicalized source identifier, see CacheKey.
	Key string `json:"key"`

	Document *Document `json:"document"`

	// FetchedAt is when the document was normalized; reset on every put.
	FetchedAt time.Time `json:"fetchedAt"`

	// TTL is how long the entry stays fresh. Zero means no expiry.
	TTL time.Duration `json:"ttl"`
}

// Expired reports whether the entry's TTL has elapsed at the given time.
func (e *CacheEntry) Expired(now time.Time) bool {
	if e.TTL <= 0 {
		return false
	}
	return now.After(e.FetchedAt.Add(e.TTL))
}

// Cache stores normalized documents keyed by canonical source
// identifier. Expired entries are treated as absent and lazily evicted
// on the next write; no entry is ever observable partially written.
type Cache interface {
	// Get returns the entry for key. Returns ENOTFOUND when the key is
	// missing or its TTL has expired.
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Put stores the entry, overwriting any prior entry for its key and
	// resetting FetchedAt.
	Put(ctx context.Context, entry *CacheEntry) error

	// Clear removes all entries unconditionally.
	Clear(ctx context.Context) error
}

// CacheKey canonicalizes a source identifier for cache lookups. URLs get
// a lowercase scheme and host, default ports and fragments stripped, and
// the trailing slash trimmed; platform content IDs pass through
// unchanged.
func CacheKey(source string) string {
	if !strings.Contains(source, "://") {
		return source
	}
	u, err := url.Parse(source)
	if err != nil {
		return source
	}
	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case u.Scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	u.Host = host
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}
