package mock

import (
	"context"

	"github.com/fwojciec/webseed"
)

var _ webseed.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a test double for webseed.DomainLimiter. Both
// methods default to no-ops so unthrottled tests need no setup.
type DomainLimiter struct {
	AcquireFn   func(ctx context.Context, domain string) error
	ConfigureFn func(domain string, perMinute int)
}

func (l *DomainLimiter) Acquire(ctx context.Context, domain string) error {
	if l.AcquireFn == nil {
		return nil
	}
	return l.AcquireFn(ctx, domain)
}

func (l *DomainLimiter) Configure(domain string, perMinute int) {
	if l.ConfigureFn != nil {
		l.ConfigureFn(domain, perMinute)
	}
}
