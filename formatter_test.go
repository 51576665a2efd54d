package webseed_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/webseed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	t.Run("accepts supported formats", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"markdown", "xml", "raw"} {
			f, err := webseed.ParseFormat(name)
			require.NoError(t, err)
			assert.Equal(t, webseed.Format(name), f)
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := webseed.ParseFormat("pdf")
		require.Error(t, err)
		assert.Equal(t, webseed.EINVALID, webseed.ErrorCode(err))
	})
}

func TestMarkdownFormatter(t *testing.T) {
	t.Parallel()

	t.Run("renders a single paragraph as its own line", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeParagraph, Text: "Hello world"},
			},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
		assert.Contains(t, lines, "Hello world")
		assert.NotContains(t, string(out), "nav")
	})

	t.Run("renders headings by level", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeHeading, Level: 1, Text: "Title"},
				{Kind: webseed.NodeHeading, Level: 3, Text: "Details"},
			},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		assert.Contains(t, string(out), "# Title\n")
		assert.Contains(t, string(out), "### Details\n")
	})

	t.Run("renders a contiguous list", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeListItem, Text: "first"},
				{Kind: webseed.NodeListItem, Text: "second"},
				{Kind: webseed.NodeParagraph, Text: "after"},
			},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		assert.Contains(t, string(out), "- first\n- second\n\nafter")
	})

	t.Run("renders fenced code with language", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeCode, Language: "go", Text: "fmt.Println(42)\n"},
			},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		assert.Contains(t, string(out), "```go\nfmt.Println(42)\n```")
	})

	t.Run("renders a pipe table with header separator", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeTable, Rows: [][]string{{"Name", "Age"}, {"Ada", "36"}}},
			},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		assert.Contains(t, string(out), "| Name | Age |\n| --- | --- |\n| Ada | 36 |")
	})

	t.Run("uses local image path when stored", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeImage, Src: "https://example.com/a.png", Alt: "diagram"},
				{Kind: webseed.NodeImage, Src: "https://example.com/broken.png", Alt: "missing"},
			},
			ImagePaths: map[string]string{
				"https://example.com/a.png": "2026-08-23/1a2b3c4d-001.png",
			},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		assert.Contains(t, string(out), "![diagram](2026-08-23/1a2b3c4d-001.png)")
		// Failed downloads fall back to the remote URL.
		assert.Contains(t, string(out), "![missing](https://example.com/broken.png)")
	})

	t.Run("writes frontmatter from metadata", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com/docs",
			Metadata: webseed.PageMetadata{Title: "Docs", Description: "All the docs"},
			Nodes: []webseed.Node{
				{Kind: webseed.NodeParagraph, Text: "body"},
			},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(string(out), "---\n"))
		assert.Contains(t, string(out), "source: https://example.com/docs\n")
		assert.Contains(t, string(out), "title: Docs\n")
		assert.Contains(t, string(out), "description: All the docs\n")
	})

	t.Run("writes source-only frontmatter without metadata", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "transcript-1",
			Nodes:    []webseed.Node{{Kind: webseed.NodeParagraph, Text: "hello"}},
		}

		out, err := webseed.NewMarkdownFormatter().Format(doc)
		require.NoError(t, err)

		assert.Equal(t, "---\nsource: transcript-1\n---\n\nhello\n", string(out))
	})

	t.Run("rejects invalid nodes", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes:    []webseed.Node{{Kind: webseed.NodeHeading, Level: 9, Text: "bad"}},
		}

		_, err := webseed.NewMarkdownFormatter().Format(doc)
		assert.Equal(t, webseed.EINVALID, webseed.ErrorCode(err))
	})
}

func TestRawFormatter(t *testing.T) {
	t.Parallel()

	t.Run("wraps contiguous list items in one list", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeListItem, Text: "a"},
				{Kind: webseed.NodeListItem, Text: "b"},
			},
		}

		out, err := webseed.NewRawFormatter().Format(doc)
		require.NoError(t, err)

		assert.Equal(t, "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n", string(out))
	})

	t.Run("escapes text content", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeParagraph, Text: "a < b && c > d"},
			},
		}

		out, err := webseed.NewRawFormatter().Format(doc)
		require.NoError(t, err)

		assert.Contains(t, string(out), "<p>a &lt; b &amp;&amp; c &gt; d</p>")
	})

	t.Run("renders code with language class", func(t *testing.T) {
		t.Parallel()

		doc := &webseed.Document{
			SourceID: "https://example.com",
			Nodes: []webseed.Node{
				{Kind: webseed.NodeCode, Language: "go", Text: "x := 1"},
			},
		}

		out, err := webseed.NewRawFormatter().Format(doc)
		require.NoError(t, err)

		assert.Contains(t, string(out), `<pre><code class="language-go">x := 1</code></pre>`)
	})
}
