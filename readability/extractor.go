package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webseed.Extractor at compile time.
var _ webseed.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to recover main content from pages
// where density scoring picks poorly. The readability content HTML is
// normalized into the same node sequence the primary extractor emits.
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

	var pageURL *url.URL
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			pageURL = u
		}
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, err
	}

	nodes, err := goquery.ParseNodes(article.Content, baseURL)
	if err != nil {
		return nil, err
	}

	return &webseed.Extraction{
		Metadata: webseed.PageMetadata{
			Title:       article.Title,
			Description: article.Excerpt,
			Image:       article.Image,
		},
		Nodes: nodes,
	}, nil
}
