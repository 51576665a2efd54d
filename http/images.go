package http

import (
	"context"
	"io"
	"net/http"

	"github.com/fwojciec/webseed"
)

// Ensure ImageFetcher implements webseed.ImageFetcher at compile time.
var _ webseed.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher downloads image bytes over HTTP. It shares the Fetcher's
// timeout and user agent handling but returns raw bytes for hashing and
// storage instead of a decoded page.
type ImageFetcher struct {
	client *http.Client
}

// NewImageFetcher creates a new HTTP-based ImageFetcher.
func NewImageFetcher(opts ...Option) *ImageFetcher {
	return &ImageFetcher{client: NewFetcher(opts...).client}
}

// Fetch downloads the image at the given URL.
func (f *ImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, webseed.Errorf(webseed.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, webseed.Errorf(webseed.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, webseed.Errorf(webseed.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return data, nil
}
