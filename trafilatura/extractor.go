package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webseed.Extractor at compile time.
var _ webseed.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura as the last extractor in the fallback
// chain. Trafilatura carries its own boilerplate heuristics; its content
// tree is re-rendered and normalized into the shared node sequence.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as nodes.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*webseed.Extraction, error) {
	if rawHTML == "" {
		return nil, webseed.Errorf(webseed.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			opts.OriginalURL = u
		}
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var nodes []webseed.Node
	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		nodes, err = goquery.ParseNodes(contentHTML, baseURL)
		if err != nil {
			return nil, err
		}
	}

	return &webseed.Extraction{
		Metadata: webseed.PageMetadata{
			Title:       result.Metadata.Title,
			Description: result.Metadata.Description,
			URL:         result.Metadata.URL,
		},
		Nodes: nodes,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
