// Package gemini counts document tokens with the Gemini local
// tokenizer.
package gemini

import (
	"context"

	"github.com/fwojciec/webseed"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ webseed.TokenCounter = (*TokenCounter)(nil)

// TokenCounter reports exact Gemini token counts for formatted output.
// The tokenizer runs locally, no API call is made. The pipeline falls
// back to a byte-length estimate when construction fails, for example
// when the model's vocabulary is not bundled with the library.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter builds a counter over the given model's vocabulary.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens implements webseed.TokenCounter.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	res, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}
