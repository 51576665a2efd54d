package webseed

// PageMetadata holds OpenGraph-style metadata extracted from a page.
// All fields are optional; extraction failures omit the field rather
// than erroring.
type PageMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Type        string `json:"type,omitempty"`
	URL         string `json:"url,omitempty"` // canonical URL
}

// IsZero reports whether no metadata field is set.
func (m PageMetadata) IsZero() bool {
	return m == PageMetadata{}
}
