package pandoc

// Document is the root of the lowered tree: a document's metadata plus its
// top-level block sequence.
type Document struct {
	Meta   Metadata
	Blocks Blocks
}
