package webseed

import "context"

// DomainLimiter provides per-domain rate limiting. State is shared
// across concurrent workers; implementations must serialize mutation.
type DomainLimiter interface {
	// Acquire blocks until the rate limit allows a request to the
	// domain, or the context is canceled.
	Acquire(ctx context.Context, domain string) error

	// Configure installs a per-domain override of perMinute requests,
	// replacing any existing limit for that domain. Domains without an
	// override use the limiter's global default.
	Configure(domain string, perMinute int)
}
