package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/webseed"
	main "github.com/fwojciec/webseed/cmd/webseed"
	"github.com/fwojciec/webseed/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchDeps builds Dependencies for direct FetchCmd tests: a fetcher
// returning static HTML and an extractor producing one heading and one
// paragraph naming the source.
func fetchDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "<html><body><h1>Title</h1></body></html>", nil
		},
		CloseFn: func() error { return nil },
	}
	extractor := &mock.Extractor{
		ExtractFn: func(html, baseURL string) (*webseed.Extraction, error) {
			return &webseed.Extraction{Nodes: []webseed.Node{
				{Kind: webseed.NodeHeading, Level: 1, Text: "Title"},
				{Kind: webseed.NodeParagraph, Text: "Body for " + baseURL},
			}}, nil
		},
	}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Config:    webseed.DefaultConfig(),
		Fetcher:   fetcher,
		Extractor: extractor,
	}
}

func TestCmdFetch(t *testing.T) {
	t.Parallel()

	t.Run("prints formatted documents to stdout", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/docs", "https://example.org/guide"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# Title")
		assert.Contains(t, stdout.String(), "Body for https://example.com/docs")
		assert.Contains(t, stdout.String(), "Body for https://example.org/guide")
		assert.Contains(t, stderr.String(), "Processing 2 sources")
		assert.Contains(t, stderr.String(), "2 succeeded")
	})

	t.Run("writes one file per source into the output directory", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)
		dir := t.TempDir()
		deps.Config.OutputDir = dir
		deps.Config.OutputName = "docs"

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/docs"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stdout.String(), "documents go to files, not stdout")

		data, err := os.ReadFile(filepath.Join(dir, "docs", "example.com-docs.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Title")
	})

	t.Run("concatenates documents into a single file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)
		dir := t.TempDir()
		deps.Config.OutputDir = dir
		deps.Config.OutputName = "docs"
		deps.Config.SingleFile = true

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/docs", "https://example.org/guide"}}
		err := cmd.Run(deps)

		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "docs", "docs.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Body for https://example.com/docs")
		assert.Contains(t, string(data), "Body for https://example.org/guide")
	})

	t.Run("reports failures and returns an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)
		deps.Config.RetryDelays = []time.Duration{}
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://down.example.net/x" {
					return "", webseed.Errorf(webseed.EUNAVAILABLE, "connection refused")
				}
				return "<html></html>", nil
			},
			CloseFn: func() error { return nil },
		}

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/docs", "https://down.example.net/x"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, webseed.ErrorMessage(err), "1 of 2 sources failed")
		assert.Contains(t, stderr.String(), "fail https://down.example.net/x")
		assert.Contains(t, stderr.String(), "1 failed")
		assert.Contains(t, stdout.String(), "Body for https://example.com/docs", "surviving documents still print")
	})

	t.Run("skips ignored sources", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)
		deps.Config.IgnorePatterns = []string{`\.pdf$`}

		fetched := 0
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched++
				return "<html></html>", nil
			},
			CloseFn: func() error { return nil },
		}

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/manual.pdf", "https://example.com/docs"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 1, fetched, "ignored source must not be fetched")
		assert.Contains(t, stderr.String(), "1 skipped")
		assert.NotContains(t, stdout.String(), "manual.pdf")
	})

	t.Run("counts empty extractions as failures with fail-on-empty", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)
		deps.Config.FailOnEmpty = true
		deps.Extractor = &mock.Extractor{
			ExtractFn: func(html, baseURL string) (*webseed.Extraction, error) {
				return &webseed.Extraction{}, nil
			},
		}

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/empty"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "no content extracted")
		assert.Contains(t, stderr.String(), "1 failed")
	})

	t.Run("warns when images are requested without an output directory", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)
		deps.Config.IncludeImages = true

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/docs"}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "images require --output")
	})

	t.Run("rejects invalid ignore patterns", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := fetchDeps(stdout, stderr)
		deps.Config.IgnorePatterns = []string{"["}

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/docs"}}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webseed.EINVALID, webseed.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
