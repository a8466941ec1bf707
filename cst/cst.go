// Package cst abstracts over the external incremental parser's concrete
// syntax tree. The parser itself (picking a grammar, producing a tree) is
// the caller's responsibility; this package only defines the shape lowering
// needs to walk whatever tree it's handed.
package cst

// Point is a 0-based row/column source position, matching tree-sitter's own
// Point type.
type Point struct {
	Row    uint32
	Column uint32
}

// Node is the subset of a tree-sitter node lowering depends on. A concrete
// *sitter.Node does not satisfy it directly (its points and children are
// sitter types); SitterNode in sitter_adapter.go wraps one to provide it.
type Node interface {
	Type() string
	StartByte() uint32
	EndByte() uint32
	StartPoint() Point
	EndPoint() Point
	Content(source []byte) string
	NamedChildCount() uint32
	NamedChild(i int) Node
}

// Cursor is the subset of a tree-sitter tree cursor lowering depends on for
// top-down traversal.
type Cursor interface {
	CurrentNode() Node
	GoToFirstChild() bool
	GoToNextSibling() bool
	GoToParent() bool
}
