package etree

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/webseed"
)

// Ensure Formatter implements webseed.Formatter.
var _ webseed.Formatter = (*Formatter)(nil)

// Formatter serializes a document as indented XML: a metadata element
// followed by a content element holding one child per node. Metadata
// values and node attributes (level, language, src, href) are XML
// attributes, never character data, so the visible text of the output
// is the content text and nothing else.
type Formatter struct{}

// NewFormatter creates a new XML Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Extension implements webseed.Formatter.
func (f *Formatter) Extension() string { return "xml" }

// Format implements webseed.Formatter.
func (f *Formatter) Format(doc *webseed.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement("document")
	root.CreateAttr("source", doc.SourceID)

	meta := root.CreateElement("metadata")
	metaAttr(meta, "title", doc.Metadata.Title)
	metaAttr(meta, "description", doc.Metadata.Description)
	metaAttr(meta, "image", doc.Metadata.Image)
	metaAttr(meta, "type", doc.Metadata.Type)
	metaAttr(meta, "url", doc.Metadata.URL)
	if !doc.FetchedAt.IsZero() {
		meta.CreateAttr("fetched", doc.FetchedAt.Format("2006-01-02"))
	}

	content := root.CreateElement("content")
	for i := range doc.Nodes {
		appendNode(content, doc, &doc.Nodes[i])
	}

	out.Indent(2)
	return out.WriteToBytes()
}

func metaAttr(el *etree.Element, name, value string) {
	if value != "" {
		el.CreateAttr(name, value)
	}
}

func appendNode(content *etree.Element, doc *webseed.Document, n *webseed.Node) {
	switch n.Kind {
	case webseed.NodeHeading:
		el := content.CreateElement("heading")
		el.CreateAttr("level", strconv.Itoa(n.Level))
		el.SetText(n.Text)
	case webseed.NodeParagraph:
		content.CreateElement("paragraph").SetText(n.Text)
	case webseed.NodeText:
		content.CreateElement("text").SetText(n.Text)
	case webseed.NodeListItem:
		content.CreateElement("item").SetText(n.Text)
	case webseed.NodeCode:
		el := content.CreateElement("code")
		if n.Language != "" {
			el.CreateAttr("language", n.Language)
		}
		el.SetText(n.Text)
	case webseed.NodeTable:
		table := content.CreateElement("table")
		for _, row := range n.Rows {
			rowEl := table.CreateElement("row")
			for _, cell := range row {
				rowEl.CreateElement("cell").SetText(cell)
			}
		}
	case webseed.NodeImage:
		// A stored copy adds a local attribute; a broken download
		// leaves only the remote src.
		el := content.CreateElement("image")
		el.CreateAttr("src", n.Src)
		if n.Alt != "" {
			el.CreateAttr("alt", n.Alt)
		}
		if local, ok := doc.ImagePaths[n.Src]; ok {
			el.CreateAttr("local", local)
		}
	case webseed.NodeLink:
		el := content.CreateElement("link")
		el.CreateAttr("href", n.Href)
		el.SetText(n.Text)
	}
}
