package mock

import (
	"github.com/fwojciec/webseed"
)

var _ webseed.OutputWriter = (*OutputWriter)(nil)

// OutputWriter is a test double for webseed.OutputWriter. Every
// method defaults to a no-op; tests set only the writes they assert.
type OutputWriter struct {
	WriteAssetFn    func(localName string, data []byte) error
	WriteDocumentFn func(name string, data []byte) error
	CommitFn        func() error
	AbortFn         func() error
}

func (w *OutputWriter) WriteAsset(localName string, data []byte) error {
	if w.WriteAssetFn == nil {
		return nil
	}
	return w.WriteAssetFn(localName, data)
}

func (w *OutputWriter) WriteDocument(name string, data []byte) error {
	if w.WriteDocumentFn == nil {
		return nil
	}
	return w.WriteDocumentFn(name, data)
}

func (w *OutputWriter) Commit() error {
	if w.CommitFn == nil {
		return nil
	}
	return w.CommitFn()
}

func (w *OutputWriter) Abort() error {
	if w.AbortFn == nil {
		return nil
	}
	return w.AbortFn()
}
