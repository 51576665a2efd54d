package webseed

import (
	"fmt"
	"html"
	"strings"
)

// Ensure RawFormatter implements Formatter.
var _ Formatter = (*RawFormatter)(nil)

// RawFormatter re-emits the pruned, boilerplate-free content as minimal
// cleaned HTML markup without re-flowing it into prose structure. Block
// tags only; all text is escaped.
type RawFormatter struct{}

// NewRawFormatter creates a new RawFormatter.
func NewRawFormatter() *RawFormatter {
	return &RawFormatter{}
}

// Extension implements Formatter.
func (f *RawFormatter) Extension() string { return "html" }

// Format implements Formatter.
func (f *RawFormatter) Format(doc *Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var b strings.Builder
	nodes := doc.Nodes
	for i := 0; i < len(nodes); i++ {
		n := &nodes[i]
		switch n.Kind {
		case NodeHeading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", n.Level, html.EscapeString(n.Text), n.Level)
		case NodeParagraph:
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(n.Text))
		case NodeText:
			b.WriteString(html.EscapeString(n.Text))
			b.WriteString("\n")
		case NodeListItem:
			if i == 0 || nodes[i-1].Kind != NodeListItem {
				b.WriteString("<ul>\n")
			}
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(n.Text))
			if i+1 >= len(nodes) || nodes[i+1].Kind != NodeListItem {
				b.WriteString("</ul>\n")
			}
		case NodeCode:
			class := ""
			if n.Language != "" {
				class = fmt.Sprintf(" class=%q", "language-"+n.Language)
			}
			fmt.Fprintf(&b, "<pre><code%s>%s</code></pre>\n", class, html.EscapeString(strings.TrimRight(n.Text, "\n")))
		case NodeTable:
			writeRawTable(&b, n.Rows)
		case NodeImage:
			fmt.Fprintf(&b, "<img src=%q alt=%q>\n", doc.LocalImagePath(n.Src), n.Alt)
		case NodeLink:
			fmt.Fprintf(&b, "<a href=%q>%s</a>\n", n.Href, html.EscapeString(n.Text))
		}
	}

	return []byte(b.String()), nil
}

func writeRawTable(b *strings.Builder, rows [][]string) {
	b.WriteString("<table>\n")
	for ri, row := range rows {
		tag := "td"
		if ri == 0 {
			tag = "th"
		}
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(b, "<%s>%s</%s>", tag, html.EscapeString(cell), tag)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}
