package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/webseed"
)

// Ensure TranscriptService implements webseed.TranscriptService at compile time.
var _ webseed.TranscriptService = (*TranscriptService)(nil)

// TranscriptService reads transcripts from JSON files in a directory,
// one file per video named <id>.json. The platform retrieval itself
// happens out of band; this service only consumes its output.
type TranscriptService struct {
	dir string
}

// NewTranscriptService creates a TranscriptService reading from dir.
func NewTranscriptService(dir string) *TranscriptService {
	return &TranscriptService{dir: dir}
}

// Transcript loads the transcript for the given video ID.
// Returns ENOTFOUND when no file exists for the ID and EINVALID when
// the ID would escape the directory or the file is not valid JSON.
func (s *TranscriptService) Transcript(ctx context.Context, id string) (*webseed.Transcript, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, webseed.Errorf(webseed.EINVALID, "invalid transcript ID %q", id)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, webseed.Errorf(webseed.ENOTFOUND, "transcript %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	var t webseed.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, webseed.Errorf(webseed.EINVALID, "transcript %q is not valid JSON: %v", id, err)
	}
	if t.VideoID == "" {
		t.VideoID = id
	}

	return &t, nil
}
