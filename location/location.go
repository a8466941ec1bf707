// Package location models source positions and spans shared by every
// document-model value produced while lowering a parsed tree.
package location

import "fmt"

// Location is a single point in a source document: a byte offset plus the
// row/column pair a tree-sitter point carries alongside it. Row and Column
// are both 0-based, matching tree-sitter's own convention.
type Location struct {
	Byte   uint32
	Row    uint32
	Column uint32
}

// Range is a start/end pair of Locations. End is exclusive, as with
// tree-sitter byte ranges.
type Range struct {
	Start Location
	End   Location
}

// Empty reports whether the range spans zero bytes. Empty ranges are used
// throughout lowering for synthetic nodes that have no source counterpart
// (e.g. a Space inserted between a citation and its suffix).
func (r Range) Empty() bool {
	return r.Start.Byte == r.End.Byte
}

// EmptyRange returns the zero-width range used for synthetic nodes.
func EmptyRange() Range {
	return Range{}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Row, l.Column)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Located is implemented by anything carrying a source Range, mirroring the
// original's SourceLocation trait.
type Located interface {
	SourceRange() Range
}
