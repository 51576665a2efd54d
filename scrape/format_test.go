package scrape_test

import (
	"testing"

	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/scrape"
	"github.com/stretchr/testify/assert"
)

func TestOutputName(t *testing.T) {
	t.Parallel()

	t.Run("derives name from host and path", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example.com-docs-getting-started.md", scrape.OutputName("https://example.com/docs/getting-started", "md"))
	})

	t.Run("lowercases and collapses runs of unsafe characters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example.com-a-b-c.xml", scrape.OutputName("https://Example.COM/a//b@@c", "xml"))
	})

	t.Run("keeps dots and underscores", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example.com-release_notes.v2.md", scrape.OutputName("https://example.com/release_notes.v2", "md"))
	})

	t.Run("includes query parameters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "example.com-search-q-golang.md", scrape.OutputName("https://example.com/search?q=golang", "md"))
	})

	t.Run("platform IDs become lowercase names", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "dqw4w9wgxcq.md", scrape.OutputName("dQw4w9WgXcQ", "md"))
	})

	t.Run("falls back when nothing survives sanitizing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "source.md", scrape.OutputName("***", "md"))
	})

	t.Run("same source yields the same name", func(t *testing.T) {
		t.Parallel()
		a := scrape.OutputName("https://example.com/page", "md")
		b := scrape.OutputName("https://example.com/page", "md")
		assert.Equal(t, a, b)
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	t.Run("identical node content hashes identically", func(t *testing.T) {
		t.Parallel()

		nodes := []webseed.Node{
			{Kind: webseed.NodeHeading, Level: 1, Text: "Title"},
			{Kind: webseed.NodeParagraph, Text: "Body text."},
		}
		assert.Equal(t, scrape.ContentHash(nodes), scrape.ContentHash(nodes))
	})

	t.Run("different content hashes differently", func(t *testing.T) {
		t.Parallel()

		a := []webseed.Node{{Kind: webseed.NodeParagraph, Text: "alpha"}}
		b := []webseed.Node{{Kind: webseed.NodeParagraph, Text: "beta"}}
		assert.NotEqual(t, scrape.ContentHash(a), scrape.ContentHash(b))
	})

	t.Run("node order matters", func(t *testing.T) {
		t.Parallel()

		ab := []webseed.Node{
			{Kind: webseed.NodeParagraph, Text: "alpha"},
			{Kind: webseed.NodeParagraph, Text: "beta"},
		}
		ba := []webseed.Node{
			{Kind: webseed.NodeParagraph, Text: "beta"},
			{Kind: webseed.NodeParagraph, Text: "alpha"},
		}
		assert.NotEqual(t, scrape.ContentHash(ab), scrape.ContentHash(ba))
	})

	t.Run("empty nodes hash consistently", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scrape.ContentHash(nil), scrape.ContentHash([]webseed.Node{}))
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("returns consistent hash for same content", func(t *testing.T) {
		t.Parallel()
		content := "test content"
		hash1 := scrape.ComputeHash(content)
		hash2 := scrape.ComputeHash(content)
		assert.Equal(t, hash1, hash2)
	})

	t.Run("returns different hashes for different content", func(t *testing.T) {
		t.Parallel()
		hash1 := scrape.ComputeHash("content a")
		hash2 := scrape.ComputeHash("content b")
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("returns fixed-width hex string", func(t *testing.T) {
		t.Parallel()
		hash := scrape.ComputeHash("test")
		assert.Regexp(t, `^[0-9a-f]{16}$`, hash)
	})

	t.Run("string and byte forms agree", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scrape.ComputeHash("payload"), scrape.ComputeHashBytes([]byte("payload")))
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", scrape.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/very/long/path/to/documentation"
		result := scrape.TruncateURL(url, 20)
		assert.Equal(t, ".../to/documentation", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, scrape.TruncateURL("https://example.com", 0))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", scrape.TruncateURL("https://example.com", 3))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", scrape.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", scrape.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", scrape.FormatBytes(2*1024*1024))
	})
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	t.Run("formats small token counts", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "~500 tokens", scrape.FormatTokens(500))
	})

	t.Run("formats large token counts as k", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "~10k tokens", scrape.FormatTokens(10000))
	})

	t.Run("rounds token counts", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "~2k tokens", scrape.FormatTokens(1500))
	})
}
