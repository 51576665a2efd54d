package webseed

import "strings"

// NodeKind identifies the variant of a content Node.
type NodeKind string

// Node kinds. The set is closed: formatters switch exhaustively over it,
// so adding a kind requires updating every consumer.
const (
	NodeText      NodeKind = "text"
	NodeHeading   NodeKind = "heading"
	NodeParagraph NodeKind = "paragraph"
	NodeListItem  NodeKind = "list_item"
	NodeCode      NodeKind = "code"
	NodeTable     NodeKind = "table"
	NodeImage     NodeKind = "image"
	NodeLink      NodeKind = "link"
)

// Node is one element of a normalized content tree. Only the fields
// relevant to its Kind are set; the rest stay zero. Nodes appear in
// reading order and the order is semantically meaningful.
type Node struct {
	Kind NodeKind `json:"kind"`

	// Text holds the node's textual content. For links it is the anchor
	// text, for code blocks the verbatim source.
	Text string `json:"text,omitempty"`

	// Level is the heading level, 1 through 6.
	Level int `json:"level,omitempty"`

	// Language tags a code block, empty when unknown.
	Language string `json:"language,omitempty"`

	// Rows holds table cells, outer slice is rows, first row is the header.
	Rows [][]string `json:"rows,omitempty"`

	// Src is an image's resolved absolute URL.
	Src string `json:"src,omitempty"`

	// Alt is an image's alternative text.
	Alt string `json:"alt,omitempty"`

	// Href is a link's resolved target.
	Href string `json:"href,omitempty"`
}

// Validate returns an error if the node's fields are inconsistent with
// its kind.
func (n *Node) Validate() error {
	switch n.Kind {
	case NodeText, NodeParagraph, NodeListItem, NodeCode:
		return nil
	case NodeHeading:
		if n.Level < 1 || n.Level > 6 {
			return Errorf(EINVALID, "heading level must be 1-6, got %d", n.Level)
		}
		return nil
	case NodeTable:
		return nil
	case NodeImage:
		if n.Src == "" {
			return Errorf(EINVALID, "image node requires a source URL")
		}
		return nil
	case NodeLink:
		if n.Href == "" {
			return Errorf(EINVALID, "link node requires a target")
		}
		return nil
	default:
		return Errorf(EINVALID, "unknown node kind %q", n.Kind)
	}
}

// VisibleText returns the text a reader would see for the node. Image
// alternative text is not visible text; table cells are joined in row
// order.
func (n *Node) VisibleText() string {
	switch n.Kind {
	case NodeTable:
		var sb strings.Builder
		for _, row := range n.Rows {
			for _, cell := range row {
				if sb.Len() > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(cell)
			}
		}
		return sb.String()
	case NodeImage:
		return ""
	default:
		return n.Text
	}
}

// VisibleTokens returns the ordered sequence of non-whitespace tokens a
// reader would see across the given nodes. Formatters must preserve this
// sequence exactly, whatever the output encoding.
func VisibleTokens(nodes []Node) []string {
	var tokens []string
	for i := range nodes {
		tokens = append(tokens, strings.Fields(nodes[i].VisibleText())...)
	}
	return tokens
}

// NormalizeItemKey returns the comparison key used for list-item
// deduplication: trimmed, whitespace-collapsed, lower-cased text.
func NormalizeItemKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
