package lowering

import (
	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

var atxMarkerLevel = map[string]int{
	"atx_h1_marker": 1,
	"atx_h2_marker": 2,
	"atx_h3_marker": 3,
	"atx_h4_marker": 4,
	"atx_h5_marker": 5,
	"atx_h6_marker": 6,
}

func init() {
	register("atx_heading", atxHeadingHandler)
	register("setext_heading", setextHeadingHandler)
	for marker := range atxMarkerLevel {
		level := atxMarkerLevel[marker]
		register(marker, func(level int) handler {
			return func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
				return atxLevelMarker(level), nil
			}
		}(level))
	}
	register("setext_h1_underline", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return atxLevelMarker(1), nil
	})
	register("setext_h2_underline", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return atxLevelMarker(2), nil
	})
}

type atxLevelMarker int

func atxHeadingHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	level := 1
	var content pandoc.Inlines
	for _, c := range children {
		switch v := c.Value.(type) {
		case atxLevelMarker:
			level = int(v)
		case pandoc.Inline:
			content = append(content, v)
		case pandoc.Inlines:
			content = append(content, v...)
		}
	}
	return pandoc.Header{Level: level, Attr: pandoc.EmptyAttr(), Content: content, Range: nodeRange(n)}, nil
}

func setextHeadingHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	level := 1
	var content pandoc.Inlines
	for _, c := range children {
		switch v := c.Value.(type) {
		case atxLevelMarker:
			level = int(v)
		case pandoc.Inline:
			content = append(content, v)
		case pandoc.Inlines:
			content = append(content, v...)
		case pandoc.Block:
			if p, ok := v.(pandoc.Paragraph); ok {
				content = append(content, p.Content...)
			}
		}
	}
	return pandoc.Header{Level: level, Attr: pandoc.EmptyAttr(), Content: content, Range: nodeRange(n)}, nil
}

func init() {
	register("attribute", attributeHandler)
}

// attributeHandler lowers a trailing "{#id .class key=val}" block into a
// transient AttrInline appended to the enclosing sequence; desugar's
// header-attribute pass pops a header's trailing one back off and attaches
// it to the header. Any AttrInline still present after
// desugaring is a fatal leftover-attribute error. The node itself is a thin
// wrapper around a single commonmark_attribute child.
func attributeHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var attr pandoc.Attr
	for _, c := range children {
		if a, ok := c.Value.(pandoc.Attr); ok {
			attr = a
		}
	}
	return pandoc.AttrInline{Value: attr, Range: nodeRange(n)}, nil
}
