package scrape

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/fwojciec/webseed"
)

// defaultImageExt is used when the reference URL carries no usable
// file extension.
const defaultImageExt = ".jpg"

// ImageStore downloads the images referenced by documents and
// deduplicates them by content hash across one batch run. Two
// references whose fetched bytes hash identically share one asset and
// one file on disk; the first worker to register a hash assigns its
// local name and every later reference reuses it.
//
// ImageStore is safe for concurrent use.
type ImageStore struct {
	fetcher webseed.ImageFetcher
	writer  webseed.AssetWriter
	now     func() time.Time

	mu     sync.Mutex
	byHash map[string]*webseed.ImageAsset
	seq    int
}

// ImageStoreOption configures an ImageStore.
type ImageStoreOption func(*ImageStore)

// WithClock overrides the clock used for date buckets. Used in tests.
func WithClock(now func() time.Time) ImageStoreOption {
	return func(s *ImageStore) {
		s.now = now
	}
}

// NewImageStore creates an ImageStore. The writer may be nil, in which
// case assets are deduplicated and named but not persisted.
func NewImageStore(fetcher webseed.ImageFetcher, writer webseed.AssetWriter, opts ...ImageStoreOption) *ImageStore {
	s := &ImageStore{
		fetcher: fetcher,
		writer:  writer,
		now:     time.Now,
		byHash:  make(map[string]*webseed.ImageAsset),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve downloads every image referenced by the document's nodes,
// deduplicates by content hash, and fills in doc.Images and
// doc.ImagePaths. A failed download leaves its reference out of
// ImagePaths so formatters fall back to the remote URL; it is never a
// pipeline failure.
func (s *ImageStore) Resolve(ctx context.Context, doc *webseed.Document) {
	inDoc := make(map[string]bool, len(doc.Images))
	for _, asset := range doc.Images {
		inDoc[asset.ContentHash] = true
	}

	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if n.Kind != webseed.NodeImage {
			continue
		}
		if _, ok := doc.ImagePaths[n.Src]; ok {
			continue
		}

		asset, ok := s.resolve(ctx, n.Src)
		if !ok {
			continue
		}

		if doc.ImagePaths == nil {
			doc.ImagePaths = make(map[string]string)
		}
		doc.ImagePaths[n.Src] = path.Join("images", asset.LocalName)

		if !inDoc[asset.ContentHash] {
			inDoc[asset.ContentHash] = true
			doc.Images = append(doc.Images, asset)
		}
	}
}

// Count returns the number of unique assets registered so far.
func (s *ImageStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byHash)
}

// resolve fetches one reference and returns its asset, registering and
// persisting it when the content hash is new. The write happens under
// the lock so a hash is never observable registered without its file.
func (s *ImageStore) resolve(ctx context.Context, src string) (webseed.ImageAsset, bool) {
	data, err := s.fetcher.Fetch(ctx, src)
	if err != nil || len(data) == 0 {
		return webseed.ImageAsset{}, false
	}

	hash := ComputeHashBytes(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if asset, ok := s.byHash[hash]; ok {
		return *asset, true
	}

	s.seq++
	asset := &webseed.ImageAsset{
		SourceURL:   src,
		ContentHash: hash,
		LocalName:   fmt.Sprintf("%s/%s-%03d%s", s.now().Format("2006-01-02"), hash, s.seq, imageExt(src)),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		asset.Width = cfg.Width
		asset.Height = cfg.Height
	}

	if s.writer != nil {
		if err := s.writer.WriteAsset(asset.LocalName, data); err != nil {
			return webseed.ImageAsset{}, false
		}
	}

	s.byHash[hash] = asset
	return *asset, true
}

// imageExt extracts the file extension from a reference URL path,
// defaulting to .jpg when none is present.
func imageExt(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return defaultImageExt
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" || len(ext) > 5 {
		return defaultImageExt
	}
	return ext
}
