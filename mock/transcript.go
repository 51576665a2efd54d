package mock

import (
	"context"

	"github.com/fwojciec/webseed"
)

var _ webseed.TranscriptService = (*TranscriptService)(nil)

// TranscriptService is a test double for webseed.TranscriptService.
type TranscriptService struct {
	TranscriptFn func(ctx context.Context, id string) (*webseed.Transcript, error)
}

func (s *TranscriptService) Transcript(ctx context.Context, id string) (*webseed.Transcript, error) {
	return s.TranscriptFn(ctx, id)
}
