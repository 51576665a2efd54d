package mock

import (
	"github.com/fwojciec/webseed"
)

var _ webseed.Extractor = (*Extractor)(nil)

// Extractor is a test double for webseed.Extractor.
type Extractor struct {
	ExtractFn func(html, baseURL string) (*webseed.Extraction, error)
}

func (e *Extractor) Extract(html, baseURL string) (*webseed.Extraction, error) {
	return e.ExtractFn(html, baseURL)
}
