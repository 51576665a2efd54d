// Package fs provides file-based output storage and transcript retrieval.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/webseed"
)

// Ensure Writer implements webseed.OutputWriter at compile time.
var _ webseed.OutputWriter = (*Writer)(nil)

// Writer stages formatted documents and image assets with atomic update
// semantics. Everything is written to a temporary directory, then moved
// into place on Commit; an interrupted run never leaves partial output
// where readers look.
type Writer struct {
	baseDir    string
	name       string
	singleFile string

	mu      sync.Mutex
	used    map[string]int
	started bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithSingleFile concatenates every document into one file with the
// given name, in write order, instead of creating one file per source.
func WithSingleFile(filename string) WriterOption {
	return func(w *Writer) {
		w.singleFile = filename
	}
}

// NewWriter creates a new Writer.
// baseDir is the parent directory, name is the output directory name.
// Files are staged under baseDir/name.tmp and moved to baseDir/name on
// Commit.
func NewWriter(baseDir, name string, opts ...WriterOption) *Writer {
	w := &Writer{
		baseDir: baseDir,
		name:    name,
		used:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

func (w *Writer) finalDir() string {
	return filepath.Join(w.baseDir, w.name)
}

// WriteDocument stages one formatted document. Names that collide get a
// numeric suffix so distinct sources never overwrite each other.
func (w *Writer) WriteDocument(name string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.singleFile != "" {
		return w.appendSingle(data)
	}

	fullPath := filepath.Join(w.tempDir(), w.uniqueName(name))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// appendSingle appends one document to the concatenated file, separated
// from the previous one by a blank line. Callers hold mu.
func (w *Writer) appendSingle(data []byte) error {
	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(w.tempDir(), w.singleFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if w.started {
		if _, err := f.Write([]byte("\n\n")); err != nil {
			return err
		}
	}
	w.started = true

	_, err = f.Write(data)
	return err
}

// uniqueName disambiguates colliding document names: the first keeps
// the name, later ones get _2, _3, and so on before the extension.
// Callers hold mu.
func (w *Writer) uniqueName(name string) string {
	n := w.used[name]
	w.used[name] = n + 1
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n+1, ext)
}

// WriteAsset stages one image under images/. The first write for a
// local name wins; identical content hashes produce identical names, so
// repeats are no-ops.
func (w *Writer) WriteAsset(localName string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fullPath := filepath.Join(w.tempDir(), "images", filepath.FromSlash(localName))
	if _, err := os.Stat(fullPath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Commit moves the staged run into place, replacing any previous output
// directory of the same name. An empty run commits an empty directory.
func (w *Writer) Commit() error {
	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(w.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(w.tempDir(), w.finalDir())
}

// Abort discards the staged run, leaving any previous output untouched.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.tempDir())
}
