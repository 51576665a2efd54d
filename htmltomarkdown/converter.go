// Package htmltomarkdown renders extracted HTML as Markdown for probe
// previews.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/webseed"
)

var _ webseed.Converter = (*Converter)(nil)

// Converter turns HTML fragments into CommonMark with GFM tables.
type Converter struct {
	engine *converter.Converter
}

// NewConverter returns a ready-to-use Converter. The underlying engine
// is safe for concurrent use.
func NewConverter() *Converter {
	return &Converter{engine: newEngine()}
}

// newEngine assembles the html-to-markdown pipeline. The base plugin
// handles text collapsing, commonmark the core element set, and the
// table plugin the GFM extension documentation sites rely on.
func newEngine() *converter.Converter {
	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	}
	return converter.NewConverter(converter.WithPlugins(plugins...))
}

// Convert implements webseed.Converter.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", webseed.Errorf(webseed.EINVALID, "empty HTML input")
	}
	return c.engine.ConvertString(html)
}
