package webseed

import (
	"context"
	"fmt"
)

// Caption is one timestamped transcript segment.
type Caption struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	Text  string  `json:"text"`
}

// Comment is one viewer comment attached to a transcript. Comments
// arrive already ordered by the platform layer.
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Likes  int    `json:"likes,omitempty"`
}

// Transcript is the raw transcript of one platform video as supplied by
// the retrieval layer.
type Transcript struct {
	VideoID     string    `json:"video_id"`
	Title       string    `json:"title,omitempty"`
	Channel     string    `json:"channel,omitempty"`
	Description string    `json:"description,omitempty"`
	Captions    []Caption `json:"captions"`
	Comments    []Comment `json:"comments,omitempty"`
}

// TranscriptService retrieves transcripts by platform content ID.
type TranscriptService interface {
	// Transcript returns the transcript for the given video ID.
	// Returns ENOTFOUND if no transcript exists.
	Transcript(ctx context.Context, id string) (*Transcript, error)
}

// TranscriptOptions controls transcript normalization.
type TranscriptOptions struct {
	// MaxComments caps the number of comments included. Zero disables
	// comments entirely. Excess comments are dropped whole, never
	// truncated mid-comment.
	MaxComments int

	// Timestamps prefixes each caption paragraph with its start time.
	Timestamps bool
}

// Normalize maps the transcript into the content-tree shape formatters
// consume: one Paragraph per caption segment in emission order (segments
// are never re-sorted, even when timestamps are out of order), followed
// by an optional comments section.
func (t *Transcript) Normalize(opts TranscriptOptions) *Document {
	doc := &Document{
		SourceID: t.VideoID,
		Metadata: PageMetadata{
			Title:       t.Title,
			Description: t.Description,
		},
	}

	for _, c := range t.Captions {
		text := c.Text
		if opts.Timestamps {
			text = fmt.Sprintf("[%.1fs] %s", c.Start, c.Text)
		}
		doc.Nodes = append(doc.Nodes, Node{Kind: NodeParagraph, Text: text})
	}

	if opts.MaxComments > 0 && len(t.Comments) > 0 {
		doc.Nodes = append(doc.Nodes, Node{Kind: NodeHeading, Level: 2, Text: "Top Comments"})
		comments := t.Comments
		if len(comments) > opts.MaxComments {
			comments = comments[:opts.MaxComments]
		}
		for _, c := range comments {
			author := c.Author
			if author == "" {
				author = "Anonymous"
			}
			doc.Nodes = append(doc.Nodes, Node{Kind: NodeParagraph, Text: author + ": " + c.Text})
		}
	}

	return doc
}
