// Package lowering implements the bottom-up tree fold (C5): a single
// dispatch-on-node-kind visitor that walks the already-probed concrete
// syntax tree and produces pandoc document-model values. Node families are
// split across files the way the teacher splits from_markdown.go's
// NodeMapper into GenericBlockHandler/GenericMarkHandler plus per-kind
// closures.
package lowering

import (
	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qlog"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/location"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

// handler folds one node's already-lowered children into a value for that
// node. Its return value ends up as the Value field of the ChildResult a
// parent handler sees for this node.
type handler func(n cst.Node, children []cst.ChildResult, source []byte) (any, error)

// dispatch is keyed by cst.Node.Type(), mirroring the teacher's
// kind-string-keyed NodeMapper.
var dispatch = map[string]handler{}

func register(kind string, h handler) {
	dispatch[kind] = h
}

// Lower runs the bottom-up fold over the tree rooted at cursor's current
// node and returns the resulting Document. The caller is expected to have
// already run diagnostics.Probe and be satisfied the tree is clean (or to
// be tolerant of the unknownMarker fallback below for any node kind
// this package doesn't recognize).
func Lower(cursor cst.Cursor, source []byte) (pandoc.Document, error) {
	qlog.L().Debug("lowering: starting fold")
	result, err := cst.BottomUp(cursor, source, visit)
	if err != nil {
		return pandoc.Document{}, err
	}

	blocks, _ := asBlocks(result)
	doc := pandoc.Document{Meta: pandoc.MetaMap{}, Blocks: blocks}
	qlog.L().Debugw("lowering: finished fold", "blocks", len(doc.Blocks))
	return doc, nil
}

func visit(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	if h, ok := dispatch[n.Type()]; ok {
		return h(n, children, source)
	}
	return genericFallback(n, children, source)
}

// genericFallback handles node kinds this package has no specific handler
// for: it forwards a single child's value unchanged (the common shape for
// grammar wrapper/punctuation nodes) or, for a node with several children,
// folds them into whichever of Blocks/Inlines its children's values are
// shaped like. A node with no recognized shape at all becomes an
// IntermediateUnknown marker carrying only its range, which a parent
// assembling children simply skips -- matching the original's catch-all
// PandocNativeIntermediate::IntermediateUnknown case.
func genericFallback(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	if len(children) == 1 {
		return children[0].Value, nil
	}
	if inlines, ok := collectInlines(children); ok {
		return inlines, nil
	}
	if blocks, ok := collectBlocks(children); ok {
		return blocks, nil
	}
	return unknownMarker{Range: nodeRange(n)}, nil
}

type unknownMarker struct {
	Range location.Range
}

func nodeRange(n cst.Node) location.Range {
	sp := n.StartPoint()
	ep := n.EndPoint()
	return location.Range{
		Start: location.Location{Byte: n.StartByte(), Row: sp.Row, Column: sp.Column},
		End:   location.Location{Byte: n.EndByte(), Row: ep.Row, Column: ep.Column},
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func asInline(v any) (pandoc.Inline, bool) {
	in, ok := v.(pandoc.Inline)
	return in, ok
}

func asBlock(v any) (pandoc.Block, bool) {
	b, ok := v.(pandoc.Block)
	return b, ok
}

func asBlocks(v any) (pandoc.Blocks, bool) {
	if b, ok := v.(pandoc.Blocks); ok {
		return b, true
	}
	if b, ok := v.(pandoc.Block); ok {
		return pandoc.Blocks{b}, true
	}
	return nil, false
}

func asInlines(v any) (pandoc.Inlines, bool) {
	if in, ok := v.(pandoc.Inlines); ok {
		return in, true
	}
	if in, ok := v.(pandoc.Inline); ok {
		return pandoc.Inlines{in}, true
	}
	return nil, false
}

// collectInlines folds children into an Inlines sequence if every child
// that produced a value produced one shaped like an inline or inline
// sequence.
func collectInlines(children []cst.ChildResult) (pandoc.Inlines, bool) {
	var result pandoc.Inlines
	any_ := false
	for _, c := range children {
		switch v := c.Value.(type) {
		case pandoc.Inline:
			result = append(result, v)
			any_ = true
		case pandoc.Inlines:
			result = append(result, v...)
			any_ = true
		case unknownMarker:
			// skip
		default:
			return nil, false
		}
	}
	return result, any_
}

// collectBlocks is the block-level analogue of collectInlines.
func collectBlocks(children []cst.ChildResult) (pandoc.Blocks, bool) {
	var result pandoc.Blocks
	any_ := false
	for _, c := range children {
		switch v := c.Value.(type) {
		case pandoc.Block:
			result = append(result, v)
			any_ = true
		case pandoc.Blocks:
			result = append(result, v...)
			any_ = true
		case unknownMarker:
			// skip
		default:
			return nil, false
		}
	}
	return result, any_
}
