package webseed

// Format identifies an output serialization.
type Format string

// Supported output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatXML      Format = "xml"
	FormatRaw      Format = "raw"
)

// ParseFormat validates a format name. Returns EINVALID for names
// outside the supported set.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatXML, FormatRaw:
		return Format(s), nil
	default:
		return "", Errorf(EINVALID, "unknown output format %q (supported: markdown, xml, raw)", s)
	}
}

// Formatter serializes a normalized document into one output format.
// A Formatter changes encoding only: it must neither introduce nor
// remove visible textual content relative to the document's nodes.
type Formatter interface {
	// Format renders the document as bytes.
	Format(doc *Document) ([]byte, error)

	// Extension returns the file extension for the format, without dot.
	Extension() string
}
