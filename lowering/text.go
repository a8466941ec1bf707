package lowering

import (
	"strings"
	"unicode"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

func init() {
	register("document", documentHandler)
	register("text_base", textBaseHandler)
	register("soft_line_break", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.SoftBreak{Range: nodeRange(n)}, nil
	})
	register("hard_line_break", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.LineBreak{Range: nodeRange(n)}, nil
	})
	register("backslash_escape", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		text := n.Content(source)
		if len(text) > 1 {
			text = text[1:]
		}
		return pandoc.Str{Text: text, Range: nodeRange(n)}, nil
	})
	register("thematic_break", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.HorizontalRule{Range: nodeRange(n)}, nil
	})
	register("paragraph", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		content, _ := collectInlines(children)
		return pandoc.Paragraph{Content: content, Range: nodeRange(n)}, nil
	})
	register("block_quote", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		content, _ := collectBlocks(children)
		return pandoc.BlockQuote{Content: content, Range: nodeRange(n)}, nil
	})
	register("minus_metadata", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.RawBlock{
			Format: "quarto_minus_metadata",
			Text:   n.Content(source),
			Range:  nodeRange(n),
		}, nil
	})
}

// textBaseHandler classifies a text_base leaf the way native_inline does:
// any run containing whitespace becomes a Space, otherwise a Str. The
// grammar's text leaves are atomic runs of either kind, so a containment
// check is equivalent to a whole-string match.
func textBaseHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	text := n.Content(source)
	if strings.ContainsFunc(text, unicode.IsSpace) {
		return pandoc.Space{Range: nodeRange(n)}, nil
	}
	return pandoc.Str{Text: text, Range: nodeRange(n)}, nil
}

func documentHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	blocks, _ := collectBlocks(children)
	return blocks, nil
}
