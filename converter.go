package webseed

// Converter converts HTML to Markdown. Used by the probe command for
// quick single-page previews; batch output goes through Formatter
// implementations instead.
type Converter interface {
	// Convert renders extracted HTML as Markdown.
	Convert(html string) (string, error)
}
