package scrape

import (
	"context"
	"sync"

	"github.com/fwojciec/webseed"
	"golang.org/x/time/rate"
)

var _ webseed.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter with a burst of 1, so concurrent
// workers can proceed against different domains while requests within
// one domain are spaced to its configured requests-per-minute.
type DomainLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	overrides map[string]int
	perMinute int
}

// NewDomainLimiter creates a DomainLimiter with the given default
// requests-per-minute limit. Domains without an override use this
// default.
func NewDomainLimiter(perMinute int) *DomainLimiter {
	return &DomainLimiter{
		limiters:  make(map[string]*rate.Limiter),
		overrides: make(map[string]int),
		perMinute: perMinute,
	}
}

// Acquire blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Acquire(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(perMinuteLimit(d.limitFor(domain)), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Configure installs a per-domain override, replacing any live bucket
// for that domain so the new limit takes effect on the next Acquire.
func (d *DomainLimiter) Configure(domain string, perMinute int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.overrides[domain] = perMinute
	delete(d.limiters, domain)
}

// limitFor returns the configured requests-per-minute for the domain.
// Must be called with mu held.
func (d *DomainLimiter) limitFor(domain string) int {
	if limit, ok := d.overrides[domain]; ok {
		return limit
	}
	return d.perMinute
}

func perMinuteLimit(perMinute int) rate.Limit {
	return rate.Limit(float64(perMinute) / 60.0)
}
