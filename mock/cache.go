// Package mock provides function-field test doubles for the root
// interfaces. Methods a test is expected to drive panic when their
// field is unset; lifecycle and bookkeeping methods default to no-ops
// so tests only stub what they exercise.
package mock

import (
	"context"

	"github.com/fwojciec/webseed"
)

var _ webseed.Cache = (*Cache)(nil)

// Cache is a test double for webseed.Cache.
type Cache struct {
	GetFn   func(ctx context.Context, key string) (*webseed.CacheEntry, error)
	PutFn   func(ctx context.Context, entry *webseed.CacheEntry) error
	ClearFn func(ctx context.Context) error
}

func (c *Cache) Get(ctx context.Context, key string) (*webseed.CacheEntry, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Put(ctx context.Context, entry *webseed.CacheEntry) error {
	return c.PutFn(ctx, entry)
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.ClearFn(ctx)
}
