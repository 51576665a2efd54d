package webseed

import "context"

// Mode selects the fetch strategy for source pages. It is opaque to the
// normalization core: every mode yields HTML for the same pipeline.
type Mode string

// Fetch modes.
const (
	// ModeBasic fetches over plain HTTP.
	ModeBasic Mode = "basic"

	// ModeAdvanced renders the page in a headless browser before
	// snapshotting the DOM.
	ModeAdvanced Mode = "advanced"

	// ModeSuper renders in a browser and additionally waits for the DOM
	// to stabilize before snapshotting, for pages that populate content
	// asynchronously.
	ModeSuper Mode = "super"
)

// ParseMode validates a fetch mode name. Returns EINVALID for names
// outside the supported set.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBasic, ModeAdvanced, ModeSuper:
		return Mode(s), nil
	default:
		return "", Errorf(EINVALID, "unknown fetch mode %q (supported: basic, advanced, super)", s)
	}
}

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
