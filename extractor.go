package webseed

// Extraction holds the normalized content of one HTML page.
type Extraction struct {
	// Metadata holds OpenGraph-style page metadata. May be zero when
	// extraction is disabled or the page carries none.
	Metadata PageMetadata

	// Nodes is the main content as a normalized node sequence in reading
	// order. Empty when the page was entirely boilerplate; an empty
	// sequence is not an error.
	Nodes []Node
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the normalized main content.
	// Relative image and link URLs are resolved against baseURL.
	// An empty or all-boilerplate page yields an empty node sequence,
	// never an error.
	Extract(html, baseURL string) (*Extraction, error)
}

// ContentStats summarizes a candidate content region for scoring.
type ContentStats struct {
	// TextLen is the visible text length in bytes.
	TextLen int

	// Links is the number of descendant link nodes.
	Links int

	// ListItems is the number of descendant list items not part of prose.
	ListItems int
}

// Scorer ranks candidate content regions. Higher is better; ties are
// broken by document order, earliest wins.
type Scorer interface {
	Score(stats ContentStats) float64
}

// DensityScorer favors long-form prose blocks over link-dense
// navigation remnants: text length divided by one plus the count of
// links and non-prose list items.
type DensityScorer struct{}

// Score implements Scorer.
func (DensityScorer) Score(s ContentStats) float64 {
	return float64(s.TextLen) / float64(1+s.Links+s.ListItems)
}

// Ensure DensityScorer implements Scorer.
var _ Scorer = DensityScorer{}

// ChainExtractor runs a primary extractor and falls back to a secondary
// one when the primary errors or finds no visible text. Pages that both
// extractors reduce to nothing come back as the primary's empty result.
type ChainExtractor struct {
	Primary  Extractor
	Fallback Extractor
}

// Ensure ChainExtractor implements Extractor.
var _ Extractor = (*ChainExtractor)(nil)

// Extract implements Extractor.
func (c *ChainExtractor) Extract(html, baseURL string) (*Extraction, error) {
	primary, primaryErr := c.Primary.Extract(html, baseURL)
	if primaryErr == nil && len(VisibleTokens(primary.Nodes)) > 0 {
		return primary, nil
	}
	if c.Fallback == nil {
		return primary, primaryErr
	}

	fallback, fallbackErr := c.Fallback.Extract(html, baseURL)
	if fallbackErr == nil {
		// Keep the primary's metadata when the fallback found none.
		if fallback.Metadata.IsZero() && primaryErr == nil {
			fallback.Metadata = primary.Metadata
		}
		return fallback, nil
	}
	if primaryErr == nil {
		return primary, nil
	}
	return nil, primaryErr
}
