package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns result on first success", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "<html></html>", nil
		}

		html, err := scrape.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", webseed.Errorf(webseed.EUNAVAILABLE, "connection reset")
			}
			return "recovered", nil
		}

		html, err := scrape.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0, 0})

		require.NoError(t, err)
		assert.Equal(t, "recovered", html)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			return "", webseed.Errorf(webseed.EUNAVAILABLE, "attempt %d failed", attempts)
		}

		_, err := scrape.FetchWithRetry(context.Background(), "https://example.com", fetch, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 3, attempts) // initial attempt plus one per delay
		assert.Equal(t, "attempt 3 failed", webseed.ErrorMessage(err))
	})

	t.Run("stops retrying when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		attempts := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			attempts++
			cancel()
			return "", webseed.Errorf(webseed.EUNAVAILABLE, "unreachable")
		}

		_, err := scrape.FetchWithRetry(ctx, "https://example.com", fetch, []time.Duration{time.Hour})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("nil delays use the defaults", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, scrape.DefaultRetryDelays())
	})
}
