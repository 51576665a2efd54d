package mock

import (
	"context"

	"github.com/fwojciec/webseed"
)

var _ webseed.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a test double for webseed.ImageFetcher.
type ImageFetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *ImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

var _ webseed.AssetWriter = (*AssetWriter)(nil)

// AssetWriter is a test double for webseed.AssetWriter. WriteAsset
// swallows writes when unset.
type AssetWriter struct {
	WriteAssetFn func(localName string, data []byte) error
}

func (w *AssetWriter) WriteAsset(localName string, data []byte) error {
	if w.WriteAssetFn == nil {
		return nil
	}
	return w.WriteAssetFn(localName, data)
}
