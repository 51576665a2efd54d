package webseed

import "context"

// ImageAsset is one stored image, unique by content hash within a batch
// run. Two references whose fetched bytes hash identically collapse to
// one asset and one file on disk.
type ImageAsset struct {
	// SourceURL is the resolved URL of the first reference that produced
	// the asset.
	SourceURL string `json:"sourceUrl"`

	// ContentHash is the xxhash digest of the fetched bytes, the dedup key.
	ContentHash string `json:"contentHash"`

	// Width and Height are pixel dimensions when they could be decoded,
	// zero otherwise.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// LocalName is the path-relative name under the images folder:
	// <date-bucket>/<hash-prefix>-<sequence><ext>. Assigned once per
	// unique hash; stable within a run.
	LocalName string `json:"localName"`
}

// ImageFetcher retrieves image bytes for deduplication and storage.
type ImageFetcher interface {
	// Fetch downloads the image at url and returns its raw bytes.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AssetWriter persists deduplicated image assets. Writes are
// first-writer-wins: an existing file for a local name is left intact.
type AssetWriter interface {
	WriteAsset(localName string, data []byte) error
}
