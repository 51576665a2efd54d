package webseed_test

import (
	"context"
	"testing"

	"github.com/fwojciec/webseed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenEstimator(t *testing.T) {
	t.Parallel()

	est := webseed.TokenEstimator{}

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short", "four", 1},
		{"paragraph", "The quick brown fox jumps over the lazy dog", 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := est.CountTokens(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
