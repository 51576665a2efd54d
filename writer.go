package webseed

// OutputWriter persists formatted documents and their image assets with
// atomic batch semantics. Writes stage to a temporary location; Commit
// makes the whole batch permanent in one step; Abort discards pending
// writes and leaves any previous output intact.
type OutputWriter interface {
	AssetWriter

	// WriteDocument stages one formatted document under the given file
	// name. In single-file mode implementations append to one shared
	// file instead; call order determines concatenation order.
	WriteDocument(name string, data []byte) error

	Commit() error
	Abort() error
}
