package mock

import (
	"context"

	"github.com/fwojciec/webseed"
)

var _ webseed.Fetcher = (*Fetcher)(nil)

// Fetcher is a test double for webseed.Fetcher. Close defaults to a
// no-op since most tests never tear the fetcher down explicitly.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
