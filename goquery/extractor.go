package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webseed"
)

var _ webseed.Extractor = (*Extractor)(nil)

// Extractor turns raw page HTML into normalized content using a parsed
// DOM: boilerplate is pruned, the main content region is selected by
// density score, and the surviving subtree becomes a node sequence.
// An empty or all-boilerplate page yields an empty extraction, not an
// error, so one contentless source never aborts a batch.
type Extractor struct {
	scorer   webseed.Scorer
	metadata bool
}

// NewExtractor creates a DOM-based Extractor. A nil scorer falls back
// to the default density scorer. When withMetadata is false, OpenGraph
// metadata extraction is skipped entirely; content selection is
// unaffected.
func NewExtractor(scorer webseed.Scorer, withMetadata bool) *Extractor {
	if scorer == nil {
		scorer = &webseed.DensityScorer{}
	}
	return &Extractor{scorer: scorer, metadata: withMetadata}
}

// Extract parses the HTML, prunes boilerplate, and returns the
// highest-density content region as nodes together with page metadata.
func (e *Extractor) Extract(pageHTML string, baseURL string) (*webseed.Extraction, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, webseed.Errorf(webseed.EINVALID, "failed to parse HTML: %v", err)
	}

	// Metadata lives in the head and is read before pruning touches
	// the tree.
	var meta webseed.PageMetadata
	if e.metadata {
		meta = pageMetadata(doc)
	}

	prune(doc)
	content := selectContent(doc, e.scorer)

	return &webseed.Extraction{
		Metadata: meta,
		Nodes:    buildNodes(content, base),
	}, nil
}

// ContentHTML returns the selected main content region as an HTML
// fragment, pruned but not normalized into nodes. The probe command
// uses it to preview what a full run would extract.
func (e *Extractor) ContentHTML(pageHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", webseed.Errorf(webseed.EINVALID, "failed to parse HTML: %v", err)
	}

	prune(doc)
	content := selectContent(doc, e.scorer)

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return "", webseed.Errorf(webseed.EINTERNAL, "failed to render content: %v", err)
	}
	return fragment, nil
}
