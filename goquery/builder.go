package goquery

import (
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webseed"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseNodes converts an HTML fragment into a node sequence, resolving
// image and link references against baseURL. It applies the same node
// building rules as the full extractor but no boilerplate pruning, so
// callers that already hold cleaned content HTML can reuse it.
func ParseNodes(fragment string, baseURL string) ([]webseed.Node, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, webseed.Errorf(webseed.EINVALID, "failed to parse HTML: %v", err)
	}

	return buildNodes(doc.Find("body"), base), nil
}

// parseBase parses a base URL for reference resolution. An empty base
// is valid and leaves references untouched.
func parseBase(baseURL string) (*url.URL, error) {
	if baseURL == "" {
		return nil, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, webseed.Errorf(webseed.EINVALID, "invalid base URL: %v", err)
	}
	return base, nil
}

// buildNodes walks the selection in document order and emits the flat
// node sequence: text runs coalesced, list items deduplicated
// document-wide by their normalized text, first occurrence winning.
func buildNodes(sel *goquery.Selection, base *url.URL) []webseed.Node {
	b := &nodeBuilder{base: base}
	for _, n := range sel.Nodes {
		b.walk(n)
	}
	return dedupeItems(coalesceText(b.nodes))
}

type nodeBuilder struct {
	base  *url.URL
	nodes []webseed.Node
}

func (b *nodeBuilder) add(n webseed.Node) {
	b.nodes = append(b.nodes, n)
}

func (b *nodeBuilder) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := collapse(n.Data); text != "" {
			b.add(webseed.Node{Kind: webseed.NodeText, Text: text})
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Iframe:
		return
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		if text := inlineText(n); text != "" {
			b.add(webseed.Node{Kind: webseed.NodeHeading, Level: int(n.Data[1] - '0'), Text: text})
		}
	case atom.P:
		// Inline links contribute their text to the paragraph; images
		// are pulled out as standalone nodes so they can be fetched.
		if text := inlineText(n); text != "" {
			b.add(webseed.Node{Kind: webseed.NodeParagraph, Text: text})
		}
		b.collectImages(n)
	case atom.Li:
		b.listItem(n)
	case atom.Pre:
		b.code(n)
	case atom.Table:
		b.table(n)
	case atom.Img:
		b.image(n)
	case atom.A:
		b.link(n)
	case atom.Br, atom.Hr:
		return
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.walk(c)
		}
	}
}

// listItem emits the item's own text excluding nested lists, then
// walks nested lists so their items surface as siblings.
func (b *nodeBuilder) listItem(n *html.Node) {
	if text := inlineText(n, atom.Ul, atom.Ol); text != "" {
		b.add(webseed.Node{Kind: webseed.NodeListItem, Text: text})
	}
	b.collectImages(n, atom.Ul, atom.Ol)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
			b.walk(c)
		}
	}
}

// code emits a pre block verbatim, preserving internal whitespace. The
// language comes from a language- or lang- class on the inner code
// element or the pre itself.
func (b *nodeBuilder) code(n *html.Node) {
	text := strings.Trim(rawText(n), "\n")
	if text == "" {
		return
	}
	b.add(webseed.Node{Kind: webseed.NodeCode, Text: text, Language: codeLanguage(n)})
}

func (b *nodeBuilder) table(n *html.Node) {
	var rows [][]string
	var findRows func(*html.Node)
	findRows = func(x *html.Node) {
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				if cells := rowCells(c); len(cells) > 0 {
					rows = append(rows, cells)
				}
			case atom.Table:
				// Nested tables flatten poorly; keep the outer grid only.
			default:
				findRows(c)
			}
		}
	}
	findRows(n)
	if len(rows) > 0 {
		b.add(webseed.Node{Kind: webseed.NodeTable, Rows: rows})
	}
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Th || c.DataAtom == atom.Td) {
			cells = append(cells, inlineText(c))
		}
	}
	return cells
}

// image emits an image node with its source resolved to an absolute
// URL. Inline data URIs are dropped; they are decoration, not fetchable
// assets.
func (b *nodeBuilder) image(n *html.Node) {
	src := strings.TrimSpace(attrVal(n, "src"))
	if src == "" || strings.HasPrefix(src, "data:") {
		return
	}
	b.add(webseed.Node{
		Kind: webseed.NodeImage,
		Src:  b.resolve(src),
		Alt:  strings.TrimSpace(attrVal(n, "alt")),
	})
}

// link emits a standalone anchor as a link node. Anchors inside
// paragraphs, headings, and list items never reach here; their text is
// absorbed by the enclosing block. Link text falls back to the resolved
// href so every link stays visible in text form.
func (b *nodeBuilder) link(n *html.Node) {
	href := strings.TrimSpace(attrVal(n, "href"))
	if href == "" || isNonHTTPLink(href) {
		return
	}
	resolved := b.resolve(href)
	text := inlineText(n)
	if text == "" {
		text = resolved
	}
	b.add(webseed.Node{Kind: webseed.NodeLink, Text: text, Href: resolved})
	b.collectImages(n)
}

// collectImages emits every img in the subtree in document order,
// skipping excluded element subtrees.
func (b *nodeBuilder) collectImages(n *html.Node, exclude ...atom.Atom) {
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		if x.Type == html.ElementNode {
			if x.DataAtom == atom.Img {
				b.image(x)
				return
			}
			if slices.Contains(exclude, x.DataAtom) {
				return
			}
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
}

// resolve resolves a reference against the page base per standard URL
// resolution, preserving the reference's query and fragment. Without a
// base, or when the reference does not parse, it is returned unchanged.
func (b *nodeBuilder) resolve(ref string) string {
	if b.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.base.ResolveReference(u).String()
}

// inlineText flattens the visible text of a subtree: each text node is
// trimmed and whitespace-collapsed, and adjacent runs join with exactly
// one space. Subtrees rooted at excluded elements contribute nothing.
func inlineText(n *html.Node, exclude ...atom.Atom) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		switch x.Type {
		case html.TextNode:
			if t := collapse(x.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch x.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
			if slices.Contains(exclude, x.DataAtom) {
				return
			}
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return strings.Join(parts, " ")
}

// rawText concatenates the text nodes of a subtree without collapsing,
// preserving code indentation and line breaks.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		if x.Type == html.TextNode {
			sb.WriteString(x.Data)
			return
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func codeLanguage(pre *html.Node) string {
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			if lang := languageFromClass(attrVal(c, "class")); lang != "" {
				return lang
			}
		}
	}
	return languageFromClass(attrVal(pre, "class"))
}

func languageFromClass(class string) string {
	for _, field := range strings.Fields(class) {
		for _, prefix := range []string{"language-", "lang-"} {
			if strings.HasPrefix(field, prefix) {
				return strings.TrimPrefix(field, prefix)
			}
		}
	}
	return ""
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// coalesceText merges runs of adjacent text nodes into one, joined with
// a single space, so inline fragments split across sibling elements
// read as one run.
func coalesceText(nodes []webseed.Node) []webseed.Node {
	var out []webseed.Node
	for _, n := range nodes {
		if n.Kind == webseed.NodeText && len(out) > 0 && out[len(out)-1].Kind == webseed.NodeText {
			out[len(out)-1].Text += " " + n.Text
			continue
		}
		out = append(out, n)
	}
	return out
}

// dedupeItems drops list items whose normalized text matches an earlier
// item anywhere in the document. The first occurrence keeps its
// position; repeated navigation blocks collapse to one copy.
func dedupeItems(nodes []webseed.Node) []webseed.Node {
	seen := make(map[string]struct{})
	out := make([]webseed.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == webseed.NodeListItem {
			key := webseed.NormalizeItemKey(n.Text)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, n)
	}
	return out
}
