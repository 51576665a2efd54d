// Package rod provides a browser-based implementation of webseed.Fetcher
// for pages that require JavaScript rendering.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/webseed"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds the time spent rendering a single page.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements webseed.Fetcher at compile time.
var _ webseed.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Pages are opened against a managed browser that is
// recycled periodically, so Chrome's memory growth stays bounded over
// long batch runs.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	stabilize bool
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds a single page render.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithStabilization scrolls the page and waits for DOM mutations to
// quiet down before capture, so lazily loaded content is included.
// This trades latency for completeness on infinite-scroll pages.
func WithStabilization() Option {
	return func(f *Fetcher) {
		f.stabilize = true
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", webseed.Errorf(webseed.EINVALID, "fetcher is closed")
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// Create a new page
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	// Navigate to URL
	if err := page.Navigate(url); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.stabilize {
		settle(page)
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()

	return html, nil
}

// settle nudges lazy loaders by scrolling to the bottom, waits for the
// DOM to stop mutating, and scrolls back so capture starts at the top.
// Failures are ignored: a page that never settles is captured as-is.
func settle(page *rod.Page) {
	_, _ = page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	_ = page.WaitDOMStable(300*time.Millisecond, 0)
	_, _ = page.Eval(`() => window.scrollTo(0, 0)`)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
