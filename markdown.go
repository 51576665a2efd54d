package webseed

import (
	"strings"
)

// Ensure MarkdownFormatter implements Formatter.
var _ Formatter = (*MarkdownFormatter)(nil)

// MarkdownFormatter renders a document as Markdown: YAML frontmatter for
// metadata, then the content nodes. Headings map to #-prefixed lines,
// tables to pipe-delimited grids, code to fenced blocks, images to
// ![alt](path) with the stored local path when one was assigned.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Extension implements Formatter.
func (f *MarkdownFormatter) Extension() string { return "md" }

// Format implements Formatter.
func (f *MarkdownFormatter) Format(doc *Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var b strings.Builder
	writeFrontmatter(&b, doc)

	nodes := doc.Nodes
	for i := 0; i < len(nodes); i++ {
		n := &nodes[i]
		switch n.Kind {
		case NodeHeading:
			b.WriteString(strings.Repeat("#", n.Level))
			b.WriteString(" ")
			b.WriteString(n.Text)
			b.WriteString("\n\n")
		case NodeParagraph, NodeText:
			b.WriteString(n.Text)
			b.WriteString("\n\n")
		case NodeListItem:
			b.WriteString("- ")
			b.WriteString(n.Text)
			b.WriteString("\n")
			// Close the list after its last item.
			if i+1 >= len(nodes) || nodes[i+1].Kind != NodeListItem {
				b.WriteString("\n")
			}
		case NodeCode:
			b.WriteString("```")
			b.WriteString(n.Language)
			b.WriteString("\n")
			b.WriteString(strings.TrimRight(n.Text, "\n"))
			b.WriteString("\n```\n\n")
		case NodeTable:
			writeMarkdownTable(&b, n.Rows)
		case NodeImage:
			b.WriteString("![")
			b.WriteString(n.Alt)
			b.WriteString("](")
			b.WriteString(doc.LocalImagePath(n.Src))
			b.WriteString(")\n\n")
		case NodeLink:
			b.WriteString("[")
			b.WriteString(n.Text)
			b.WriteString("](")
			b.WriteString(n.Href)
			b.WriteString(")\n\n")
		}
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// writeFrontmatter emits the YAML metadata header: the source always,
// metadata fields when present.
func writeFrontmatter(b *strings.Builder, doc *Document) {
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.SourceID)
	b.WriteString("\n")
	if doc.Metadata.Title != "" {
		b.WriteString("title: ")
		b.WriteString(doc.Metadata.Title)
		b.WriteString("\n")
	}
	if doc.Metadata.Description != "" {
		b.WriteString("description: ")
		b.WriteString(doc.Metadata.Description)
		b.WriteString("\n")
	}
	if !doc.FetchedAt.IsZero() {
		b.WriteString("fetched: ")
		b.WriteString(doc.FetchedAt.Format("2006-01-02"))
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
}

// writeMarkdownTable renders rows as a pipe-delimited grid with a header
// separator after the first row. Pipes inside cells are escaped.
func writeMarkdownTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	writeRow := func(row []string) {
		b.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = strings.ReplaceAll(row[i], "|", "\\|")
			}
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(rows[0])
	b.WriteString("|")
	for i := 0; i < width; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	b.WriteString("\n")
}
