package cst_test

import (
	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
)

// fixtureNode is an in-process stand-in for a *sitter.Node, used so tests
// don't need a real tree-sitter parse to exercise the walk functions.
type fixtureNode struct {
	kind     string
	start    uint32
	end      uint32
	children []*fixtureNode
}

func (n *fixtureNode) Type() string      { return n.kind }
func (n *fixtureNode) StartByte() uint32 { return n.start }
func (n *fixtureNode) EndByte() uint32   { return n.end }
func (n *fixtureNode) StartPoint() cst.Point {
	return cst.Point{Row: 0, Column: n.start}
}
func (n *fixtureNode) EndPoint() cst.Point {
	return cst.Point{Row: 0, Column: n.end}
}
func (n *fixtureNode) Content(source []byte) string {
	if int(n.end) > len(source) {
		return ""
	}
	return string(source[n.start:n.end])
}
func (n *fixtureNode) NamedChildCount() uint32 { return uint32(len(n.children)) }
func (n *fixtureNode) NamedChild(i int) cst.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// fixtureCursor is a minimal tree-cursor over a fixtureNode tree.
type fixtureCursor struct {
	stack []*fixtureNode
	idx   []int
}

func newFixtureCursor(root *fixtureNode) *fixtureCursor {
	return &fixtureCursor{stack: []*fixtureNode{root}, idx: []int{0}}
}

func (c *fixtureCursor) CurrentNode() cst.Node {
	return c.stack[len(c.stack)-1]
}

func (c *fixtureCursor) GoToFirstChild() bool {
	top := c.stack[len(c.stack)-1]
	if len(top.children) == 0 {
		return false
	}
	c.stack = append(c.stack, top.children[0])
	c.idx = append(c.idx, 0)
	return true
}

func (c *fixtureCursor) GoToNextSibling() bool {
	if len(c.stack) < 2 {
		return false
	}
	parent := c.stack[len(c.stack)-2]
	nextIdx := c.idx[len(c.idx)-1] + 1
	if nextIdx >= len(parent.children) {
		return false
	}
	c.idx[len(c.idx)-1] = nextIdx
	c.stack[len(c.stack)-1] = parent.children[nextIdx]
	return true
}

func (c *fixtureCursor) GoToParent() bool {
	if len(c.stack) < 2 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	c.idx = c.idx[:len(c.idx)-1]
	return true
}
