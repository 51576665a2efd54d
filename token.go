package webseed

import "context"

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Ensure TokenEstimator implements TokenCounter.
var _ TokenCounter = TokenEstimator{}

// TokenEstimator approximates token counts as one token per four bytes.
// Used when no model tokenizer is available; the estimate is coarse but
// cheap and model-independent.
type TokenEstimator struct{}

// CountTokens implements TokenCounter.
func (TokenEstimator) CountTokens(_ context.Context, text string) (int, error) {
	return len(text) / 4, nil
}
