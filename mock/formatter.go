package mock

import (
	"github.com/fwojciec/webseed"
)

var _ webseed.Formatter = (*Formatter)(nil)

// Formatter is a test double for webseed.Formatter. Extension
// defaults to "md" when unset.
type Formatter struct {
	FormatFn    func(doc *webseed.Document) ([]byte, error)
	ExtensionFn func() string
}

func (f *Formatter) Format(doc *webseed.Document) ([]byte, error) {
	return f.FormatFn(doc)
}

func (f *Formatter) Extension() string {
	if f.ExtensionFn == nil {
		return "md"
	}
	return f.ExtensionFn()
}
