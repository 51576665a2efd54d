package mock

import (
	"context"

	"github.com/fwojciec/webseed"
)

var _ webseed.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a test double for webseed.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
