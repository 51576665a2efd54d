package webseed

import (
	"time"
)

// Document is a normalized, deduplicated representation of one source:
// a web page or a platform transcript. It is owned by the pipeline run
// that created it and treated as immutable once handed to a Formatter.
type Document struct {
	ID       string `json:"id"`
	SourceID string `json:"sourceId"` // URL or platform content ID

	Metadata PageMetadata `json:"metadata"`

	// Nodes is the normalized content in reading order.
	Nodes []Node `json:"nodes"`

	// Images are the deduplicated assets referenced by Nodes, unique by
	// content hash.
	Images []ImageAsset `json:"images,omitempty"`

	// ImagePaths maps every successfully stored image reference URL to
	// its assigned local name. References absent from the map render
	// with their remote URL.
	ImagePaths map[string]string `json:"imagePaths,omitempty"`

	// ContentHash identifies the serialized content, used to detect
	// unchanged re-fetches.
	ContentHash string `json:"contentHash,omitempty"`

	TokenCount int           `json:"tokenCount"`
	ByteSize   int           `json:"byteSize"`
	Duration   time.Duration `json:"duration"`
	FetchedAt  time.Time     `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceID == "" {
		return Errorf(EINVALID, "document source ID required")
	}
	for i := range d.Nodes {
		if err := d.Nodes[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the document carries no visible text. Empty
// documents are valid output: they represent pages that were entirely
// boilerplate.
func (d *Document) Empty() bool {
	for i := range d.Nodes {
		if len(d.Nodes[i].VisibleText()) > 0 {
			return false
		}
	}
	return true
}

// LocalImagePath returns the stored local name for an image reference
// URL, or the URL itself when the image was not stored (disabled,
// failed download, or a reference whose fetch failed).
func (d *Document) LocalImagePath(src string) string {
	if p, ok := d.ImagePaths[src]; ok {
		return p
	}
	return src
}
