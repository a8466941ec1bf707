package filter

import "github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"

// FilterInlines rewrites a sequence of inlines: each element is first
// handed to the matching per-variant callback (if any); an element with no
// callback, or one its callback leaves Unchanged, is then structurally
// recursed into (its own inline/block children filtered). For any other
// outcome, the callback's Recurse flag controls whether its replacement
// nodes are themselves run back through the filter before being spliced
// into the result. Once
// every element has been processed, the sequence-level Inlines callback (if
// any) runs over the whole rewritten sequence.
func FilterInlines(inlines pandoc.Inlines, f *Filter) pandoc.Inlines {
	result := make(pandoc.Inlines, 0, len(inlines))
	for _, in := range inlines {
		result = append(result, filterOneInline(in, f)...)
	}
	if f.onInlines != nil {
		result = f.onInlines(result)
	}
	return result
}

func filterOneInline(in pandoc.Inline, f *Filter) pandoc.Inlines {
	outcome, handled := applyInlineCallback(in, f)
	if !handled {
		return pandoc.Inlines{recurseIntoInline(in, f)}
	}
	if outcome.unchanged {
		return pandoc.Inlines{recurseIntoInline(outcome.Result[0], f)}
	}
	if !outcome.Recurse {
		return outcome.Result
	}
	out := make(pandoc.Inlines, 0, len(outcome.Result))
	for _, r := range outcome.Result {
		out = append(out, filterOneInline(r, f)...)
	}
	return out
}

// recurseIntoInline filters the child inline/block sequences of a
// container inline, returning a copy with the filtered children.
func recurseIntoInline(in pandoc.Inline, f *Filter) pandoc.Inline {
	switch v := in.(type) {
	case pandoc.Emph:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Underline:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Strong:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Strikeout:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Superscript:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Subscript:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.SmallCaps:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Quoted:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Span:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Link:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Image:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Cite:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Note:
		v.Content = FilterBlocks(v.Content, f)
		return v
	default:
		return in
	}
}

func applyInlineCallback(in pandoc.Inline, f *Filter) (InlineOutcome, bool) {
	switch v := in.(type) {
	case pandoc.Superscript:
		if f.onSuperscript != nil {
			return f.onSuperscript(v), true
		}
	case pandoc.Shortcode:
		if f.onShortcode != nil {
			return f.onShortcode(v), true
		}
	case pandoc.NoteReference:
		if f.onNoteReference != nil {
			return f.onNoteReference(v), true
		}
	case pandoc.AttrInline:
		if f.onAttrInline != nil {
			return f.onAttrInline(v), true
		}
	}
	return InlineOutcome{}, false
}

// FilterBlocks is the block-level analogue of FilterInlines.
func FilterBlocks(blocks pandoc.Blocks, f *Filter) pandoc.Blocks {
	result := make(pandoc.Blocks, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, filterOneBlock(b, f)...)
	}
	if f.onBlocks != nil {
		result = f.onBlocks(result)
	}
	return result
}

func filterOneBlock(b pandoc.Block, f *Filter) pandoc.Blocks {
	outcome, handled := applyBlockCallback(b, f)
	if !handled {
		return pandoc.Blocks{recurseIntoBlock(b, f)}
	}
	if outcome.unchanged {
		return pandoc.Blocks{recurseIntoBlock(outcome.Result[0], f)}
	}
	if !outcome.Recurse {
		return outcome.Result
	}
	out := make(pandoc.Blocks, 0, len(outcome.Result))
	for _, r := range outcome.Result {
		out = append(out, filterOneBlock(r, f)...)
	}
	return out
}

func recurseIntoBlock(b pandoc.Block, f *Filter) pandoc.Block {
	switch v := b.(type) {
	case pandoc.Plain:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Paragraph:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.Header:
		v.Content = FilterInlines(v.Content, f)
		return v
	case pandoc.BlockQuote:
		v.Content = FilterBlocks(v.Content, f)
		return v
	case pandoc.Div:
		v.Content = FilterBlocks(v.Content, f)
		return v
	case pandoc.Figure:
		v.Content = FilterBlocks(v.Content, f)
		return v
	case pandoc.BulletList:
		items := make([]pandoc.Blocks, len(v.Content))
		for i, item := range v.Content {
			items[i] = FilterBlocks(item, f)
		}
		v.Content = items
		return v
	case pandoc.OrderedList:
		items := make([]pandoc.Blocks, len(v.Content))
		for i, item := range v.Content {
			items[i] = FilterBlocks(item, f)
		}
		v.Content = items
		return v
	case pandoc.DefinitionList:
		items := make([]pandoc.DefinitionItem, len(v.Items))
		for i, item := range v.Items {
			item.Term = FilterInlines(item.Term, f)
			defs := make([]pandoc.Blocks, len(item.Definitions))
			for j, d := range item.Definitions {
				defs[j] = FilterBlocks(d, f)
			}
			item.Definitions = defs
			items[i] = item
		}
		v.Items = items
		return v
	default:
		return b
	}
}

func applyBlockCallback(b pandoc.Block, f *Filter) (BlockOutcome, bool) {
	switch v := b.(type) {
	case pandoc.Header:
		if f.onHeader != nil {
			return f.onHeader(v), true
		}
	case pandoc.Paragraph:
		if f.onParagraph != nil {
			return f.onParagraph(v), true
		}
	case pandoc.RawBlock:
		if f.onRawBlock != nil {
			return f.onRawBlock(v), true
		}
	}
	return BlockOutcome{}, false
}
