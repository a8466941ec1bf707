package lowering_test

import (
	"testing"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qerr"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/lowering"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	kind     string
	start    uint32
	end      uint32
	children []*node
}

func (n *node) Type() string                { return n.kind }
func (n *node) StartByte() uint32           { return n.start }
func (n *node) EndByte() uint32             { return n.end }
func (n *node) StartPoint() cst.Point       { return cst.Point{Row: 0, Column: n.start} }
func (n *node) EndPoint() cst.Point         { return cst.Point{Row: 0, Column: n.end} }
func (n *node) Content(source []byte) string {
	if int(n.end) > len(source) {
		return ""
	}
	return string(source[n.start:n.end])
}
func (n *node) NamedChildCount() uint32   { return uint32(len(n.children)) }
func (n *node) NamedChild(i int) cst.Node { return n.children[i] }

type cursor struct {
	stack []*node
	idx   []int
}

func newCursor(root *node) *cursor { return &cursor{stack: []*node{root}, idx: []int{0}} }

func (c *cursor) CurrentNode() cst.Node { return c.stack[len(c.stack)-1] }
func (c *cursor) GoToFirstChild() bool {
	top := c.stack[len(c.stack)-1]
	if len(top.children) == 0 {
		return false
	}
	c.stack = append(c.stack, top.children[0])
	c.idx = append(c.idx, 0)
	return true
}
func (c *cursor) GoToNextSibling() bool {
	if len(c.stack) < 2 {
		return false
	}
	parent := c.stack[len(c.stack)-2]
	next := c.idx[len(c.idx)-1] + 1
	if next >= len(parent.children) {
		return false
	}
	c.idx[len(c.idx)-1] = next
	c.stack[len(c.stack)-1] = parent.children[next]
	return true
}
func (c *cursor) GoToParent() bool {
	if len(c.stack) < 2 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	c.idx = c.idx[:len(c.idx)-1]
	return true
}

func leaf(kind string, start, end uint32) *node {
	return &node{kind: kind, start: start, end: end}
}

func TestLowerParagraphWithEmphasis(t *testing.T) {
	source := []byte("hi *there*")
	word := leaf("text_base", 0, 2)
	space := leaf("text_base", 2, 3)
	emText := leaf("text_base", 4, 9)
	emphasis := &node{kind: "emphasis", start: 3, end: 10, children: []*node{emText}}
	para := &node{kind: "paragraph", start: 0, end: 10, children: []*node{word, space, emphasis}}
	doc := &node{kind: "document", start: 0, end: 10, children: []*node{para}}

	result, err := lowering.Lower(newCursor(doc), source)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)

	p, ok := result.Blocks[0].(pandoc.Paragraph)
	require.True(t, ok)
	require.Len(t, p.Content, 3)
	assert.Equal(t, pandoc.Str{Text: "hi"}, stripRange(p.Content[0]))
	_, isSpace := p.Content[1].(pandoc.Space)
	assert.True(t, isSpace)
	emph, ok := p.Content[2].(pandoc.Emph)
	require.True(t, ok)
	require.Len(t, emph.Content, 1)
	assert.Equal(t, "there", emph.Content[0].(pandoc.Str).Text)
}

func stripRange(in pandoc.Inline) pandoc.Inline {
	if s, ok := in.(pandoc.Str); ok {
		return pandoc.Str{Text: s.Text}
	}
	return in
}

func TestLowerPipeTableWithoutHeaderIsFatal(t *testing.T) {
	source := []byte("| a |\n")
	row := &node{kind: "pipe_table_row", start: 0, end: 6}
	table := &node{kind: "pipe_table", start: 0, end: 6, children: []*node{row}}
	doc := &node{kind: "document", start: 0, end: 6, children: []*node{table}}

	_, err := lowering.Lower(newCursor(doc), source)
	require.Error(t, err)
	var shapeErr *qerr.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestLowerCompoundCitationBracket(t *testing.T) {
	source := []byte("[@smith2020; @jones2019, p. 10]")
	smithKey := leaf("citation_id_author_in_text", 2, 11)
	smith := &node{kind: "citation", start: 1, end: 11, children: []*node{smithKey}}
	jonesKey := leaf("citation_id_author_in_text", 14, 23)
	jones := &node{kind: "citation", start: 13, end: 23, children: []*node{jonesKey}}
	semicolon := leaf("text_base", 11, 12)
	semicolonSpace := leaf("text_base", 12, 13)
	comma := leaf("text_base", 23, 31)
	link := &node{kind: "inline_link", start: 0, end: 31, children: []*node{smith, semicolon, semicolonSpace, jones, comma}}
	para := &node{kind: "paragraph", start: 0, end: 31, children: []*node{link}}
	doc := &node{kind: "document", start: 0, end: 31, children: []*node{para}}

	result, err := lowering.Lower(newCursor(doc), source)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)

	p, ok := result.Blocks[0].(pandoc.Paragraph)
	require.True(t, ok)
	require.Len(t, p.Content, 1)
	cite, ok := p.Content[0].(pandoc.Cite)
	require.True(t, ok)
	require.Len(t, cite.Citations, 2)
	assert.Equal(t, "smith2020", cite.Citations[0].ID)
	assert.Equal(t, "jones2019", cite.Citations[1].ID)
}

func TestLowerMinusMetadataProducesRawBlock(t *testing.T) {
	source := []byte("---\ntitle: x\n---")
	meta := leaf("minus_metadata", 0, uint32(len(source)))
	doc := &node{kind: "document", start: 0, end: uint32(len(source)), children: []*node{meta}}

	result, err := lowering.Lower(newCursor(doc), source)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)
	rb, ok := result.Blocks[0].(pandoc.RawBlock)
	require.True(t, ok)
	assert.Equal(t, "quarto_minus_metadata", rb.Format)
}
