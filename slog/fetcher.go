package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webseed"
)

var _ webseed.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs each fetch with the rendered page size.
type LoggingFetcher struct {
	next   webseed.Fetcher
	logger *slog.Logger
}

func NewLoggingFetcher(next webseed.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	f.logger.Info("fetch",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
		"err", err,
	)
	return html, err
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
