package lowering

import (
	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

func init() {
	register("fenced_div_block", fencedDivBlockHandler)
	register("div_marker", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return unknownMarker{Range: nodeRange(n)}, nil
	})
	register("note_reference", noteReferenceHandler)
	register("footnote_reference", noteReferenceHandler)
}

// fencedDivBlockHandler lowers a ":::{.class}\n...\n:::" fenced div. A div
// with no recognizable attribute block still lowers successfully with an
// empty Attr; malformed attribute text is not reported at all (the
// attribute is simply empty), not a fatal error -- an unparseable div attribute doesn't
// make the rest of the document's shape unrecoverable.
func fencedDivBlockHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	attr := pandoc.EmptyAttr()
	var content pandoc.Blocks
	for _, c := range children {
		switch v := c.Value.(type) {
		case codeAttrPart:
			attr = mergeAttr(attr, v.Attr)
		case pandoc.Attr:
			attr = mergeAttr(attr, v)
		case pandoc.Block:
			content = append(content, v)
		case pandoc.Blocks:
			content = append(content, v...)
		}
	}
	return pandoc.Div{Attr: attr, Content: content, Range: nodeRange(n)}, nil
}

func noteReferenceHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	id := footnoteID(n.Content(source))
	return pandoc.NoteReference{ID: id, Range: nodeRange(n)}, nil
}

func footnoteID(raw string) string {
	id := raw
	for len(id) > 0 && (id[0] == '[' || id[0] == '^') {
		id = id[1:]
	}
	for len(id) > 0 && id[len(id)-1] == ']' {
		id = id[:len(id)-1]
	}
	return id
}
