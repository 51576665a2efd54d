// Package http fetches pages and images with plain GET requests. It
// serves server-rendered sites; pages that need a JavaScript runtime
// go through the rod fetcher instead.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webseed"
)

// DefaultFetchTimeout bounds a single request end to end.
const DefaultFetchTimeout = 30 * time.Second

// userAgent is sent on every request. Some sites serve reduced or empty
// pages to unknown clients, so a desktop browser string is used.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var _ webseed.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML without executing scripts.
type Fetcher struct {
	client *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout overrides DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// NewFetcher creates a Fetcher. The zero configuration is usable.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: DefaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the HTML content from the given URL.
// Returns ENOTFOUND for pages that no longer exist and EUNAVAILABLE for
// every other non-success status, so callers can tell a permanent miss
// from a transient failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", webseed.Errorf(webseed.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", webseed.Errorf(webseed.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", webseed.Errorf(webseed.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return string(body), nil
}

// Close implements webseed.Fetcher. There is nothing to release.
func (f *Fetcher) Close() error {
	return nil
}

// statusError maps a non-2xx response to an application error.
func statusError(status int, url string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return webseed.Errorf(webseed.ENOTFOUND, "HTTP %d for %s", status, url)
	default:
		return webseed.Errorf(webseed.EUNAVAILABLE, "HTTP %d for %s", status, url)
	}
}
