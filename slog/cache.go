// Package slog wraps the pipeline's service interfaces with
// structured logging. Each decorator logs one line per operation with
// its outcome and duration, then hands the result through unchanged.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webseed"
)

var _ webseed.Cache = (*LoggingCache)(nil)

// LoggingCache logs lookups, stores, and clears on a Cache.
type LoggingCache struct {
	next   webseed.Cache
	logger *slog.Logger
}

func NewLoggingCache(next webseed.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

func (c *LoggingCache) Get(ctx context.Context, key string) (*webseed.CacheEntry, error) {
	begin := time.Now()
	entry, err := c.next.Get(ctx, key)
	c.logger.Info("cache lookup",
		"key", key,
		"hit", err == nil,
		"duration", time.Since(begin),
	)
	return entry, err
}

func (c *LoggingCache) Put(ctx context.Context, entry *webseed.CacheEntry) error {
	begin := time.Now()
	err := c.next.Put(ctx, entry)
	c.logger.Info("cache store",
		"key", entry.Key,
		"duration", time.Since(begin),
		"err", err,
	)
	return err
}

func (c *LoggingCache) Clear(ctx context.Context) error {
	begin := time.Now()
	err := c.next.Clear(ctx)
	c.logger.Info("cache clear",
		"duration", time.Since(begin),
		"err", err,
	)
	return err
}
