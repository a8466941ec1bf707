package cst

import sitter "github.com/smacker/go-tree-sitter"

// SitterNode adapts a real *sitter.Node to the Node interface.
type SitterNode struct {
	N *sitter.Node
}

func (n SitterNode) Type() string      { return n.N.Type() }
func (n SitterNode) StartByte() uint32 { return n.N.StartByte() }
func (n SitterNode) EndByte() uint32   { return n.N.EndByte() }

func (n SitterNode) StartPoint() Point {
	p := n.N.StartPoint()
	return Point{Row: p.Row, Column: p.Column}
}

func (n SitterNode) EndPoint() Point {
	p := n.N.EndPoint()
	return Point{Row: p.Row, Column: p.Column}
}

func (n SitterNode) Content(source []byte) string { return n.N.Content(source) }
func (n SitterNode) NamedChildCount() uint32       { return n.N.NamedChildCount() }

func (n SitterNode) NamedChild(i int) Node {
	child := n.N.NamedChild(i)
	if child == nil {
		return nil
	}
	return SitterNode{N: child}
}

// SitterCursor adapts a real *sitter.TreeCursor to the Cursor interface.
type SitterCursor struct {
	C *sitter.TreeCursor
}

func (c SitterCursor) CurrentNode() Node     { return SitterNode{N: c.C.CurrentNode()} }
func (c SitterCursor) GoToFirstChild() bool  { return c.C.GoToFirstChild() }
func (c SitterCursor) GoToNextSibling() bool { return c.C.GoToNextSibling() }
func (c SitterCursor) GoToParent() bool      { return c.C.GoToParent() }

// NewSitterCursor walks a parsed tree's root node, the entry point qmd.Read
// uses to hand a *sitter.Tree to this package.
func NewSitterCursor(tree *sitter.Tree) Cursor {
	return SitterCursor{C: sitter.NewTreeCursor(tree.RootNode())}
}
