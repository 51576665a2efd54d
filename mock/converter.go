package mock

import "github.com/fwojciec/webseed"

var _ webseed.Converter = (*Converter)(nil)

// Converter is a test double for webseed.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
