package etree_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	beevik "github.com/beevik/etree"
	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoundTrip_VisibleTokens checks the formatter contract: encoding
// changes, content does not. The visible token sequence of the Markdown
// rendering and the XML rendering must both equal the document's own
// visible tokens.
func TestRoundTrip_VisibleTokens(t *testing.T) {
	t.Parallel()

	doc := &webseed.Document{
		SourceID: "https://example.com/guide",
		Metadata: webseed.PageMetadata{
			Title:       "Guide",
			Description: "About the guide.",
		},
		FetchedAt: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		Nodes: []webseed.Node{
			{Kind: webseed.NodeHeading, Level: 1, Text: "Guide"},
			{Kind: webseed.NodeParagraph, Text: "Read the intro first."},
			{Kind: webseed.NodeListItem, Text: "one"},
			{Kind: webseed.NodeListItem, Text: "two"},
			{Kind: webseed.NodeCode, Language: "go", Text: "x := 1\ny := 2"},
			{Kind: webseed.NodeTable, Rows: [][]string{{"K", "V"}, {"a", "1"}}},
			{Kind: webseed.NodeImage, Src: "https://example.com/d.png", Alt: "diagram"},
			{Kind: webseed.NodeLink, Text: "Next", Href: "https://example.com/next"},
			{Kind: webseed.NodeText, Text: "fin"},
		},
		ImagePaths: map[string]string{
			"https://example.com/d.png": "images/2026-08-23/00aabbccddeeff00-001.png",
		},
	}
	expected := webseed.VisibleTokens(doc.Nodes)
	require.NotEmpty(t, expected)

	md, err := webseed.NewMarkdownFormatter().Format(doc)
	require.NoError(t, err)

	xml, err := etree.NewFormatter().Format(doc)
	require.NoError(t, err)

	assert.Equal(t, expected, visibleFromMarkdown(string(md)))
	assert.Equal(t, expected, visibleFromXML(t, xml))
}

var inlineLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)

// visibleFromMarkdown strips the Markdown envelope and syntax, leaving
// only the rendered text tokens: frontmatter, fences, table separators,
// and image references are dropped; heading, list, table, and link
// markers are removed.
func visibleFromMarkdown(out string) []string {
	tokens := []string{}
	inFrontmatter := false
	inFence := false
	for i, line := range strings.Split(out, "\n") {
		if i == 0 && line == "---" {
			inFrontmatter = true
			continue
		}
		if inFrontmatter {
			if line == "---" {
				inFrontmatter = false
			}
			continue
		}
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			tokens = append(tokens, strings.Fields(line)...)
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "!["):
			continue
		case isTableSeparator(trimmed):
			continue
		case strings.HasPrefix(trimmed, "|"):
			for _, cell := range strings.Split(strings.Trim(trimmed, "|"), "|") {
				tokens = append(tokens, strings.Fields(cell)...)
			}
			continue
		}
		trimmed = strings.TrimLeft(trimmed, "#")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "- ")
		trimmed = inlineLink.ReplaceAllString(trimmed, "$1")
		tokens = append(tokens, strings.Fields(trimmed)...)
	}
	return tokens
}

func isTableSeparator(line string) bool {
	if !strings.HasPrefix(line, "|") {
		return false
	}
	for _, r := range line {
		switch r {
		case '|', '-', ' ', ':':
		default:
			return false
		}
	}
	return true
}

// visibleFromXML parses the XML rendering and collects the character
// data of content elements in document order. Attributes, including
// image alt text and metadata, carry no visible tokens.
func visibleFromXML(t *testing.T, out []byte) []string {
	t.Helper()

	doc := beevik.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	content := doc.Root().SelectElement("content")
	require.NotNil(t, content)

	tokens := []string{}
	for _, el := range content.ChildElements() {
		switch el.Tag {
		case "table":
			for _, row := range el.SelectElements("row") {
				for _, cell := range row.SelectElements("cell") {
					tokens = append(tokens, strings.Fields(cell.Text())...)
				}
			}
		case "image":
		default:
			tokens = append(tokens, strings.Fields(el.Text())...)
		}
	}
	return tokens
}
