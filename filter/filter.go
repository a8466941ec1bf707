// Package filter implements the single-pass top-down rewrite framework
// (C6) that desugar builds its passes on: a per-variant optional callback
// table plus sequence-level callbacks that run once a Blocks/Inlines slice
// has had every element individually rewritten.
package filter

import "github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"

// InlineOutcome is what a per-variant inline callback returns: the inline's
// replacement(s) (one element for "no change", zero or more for a rewrite)
// and whether the replacements should themselves be run back through the
// filter (true) or taken as final (false). Rewrites that could loop forever
// on their own output -- shortcode -> Span, note-reference -> Span -- pass
// Recurse: false.
type InlineOutcome struct {
	Result  pandoc.Inlines
	Recurse bool
	// unchanged marks an Unchanged outcome: the value is kept and only its
	// children are filtered; it is not handed back to its own callback.
	unchanged bool
}

// Unchanged keeps v as-is; its own children are still filtered structurally.
func Unchanged(v pandoc.Inline) InlineOutcome {
	return InlineOutcome{Result: pandoc.Inlines{v}, Recurse: true, unchanged: true}
}

// Replace rewrites an inline into zero or more replacements.
func Replace(recurse bool, vs ...pandoc.Inline) InlineOutcome {
	return InlineOutcome{Result: vs, Recurse: recurse}
}

// BlockOutcome is the block-level analogue of InlineOutcome.
type BlockOutcome struct {
	Result    pandoc.Blocks
	Recurse   bool
	unchanged bool
}

func UnchangedBlock(v pandoc.Block) BlockOutcome {
	return BlockOutcome{Result: pandoc.Blocks{v}, Recurse: true, unchanged: true}
}

func ReplaceBlock(recurse bool, vs ...pandoc.Block) BlockOutcome {
	return BlockOutcome{Result: vs, Recurse: recurse}
}

// Filter is the set of rewrite callbacks a single pass installs. Every
// field is optional; an unset callback leaves that variant structurally
// recursed into but otherwise untouched. Build one with New and the With*
// methods, mirroring the teacher's NodeMapper-style builder registration.
type Filter struct {
	onSuperscript   func(pandoc.Superscript) InlineOutcome
	onShortcode     func(pandoc.Shortcode) InlineOutcome
	onNoteReference func(pandoc.NoteReference) InlineOutcome
	onAttrInline    func(pandoc.AttrInline) InlineOutcome

	onHeader    func(pandoc.Header) BlockOutcome
	onParagraph func(pandoc.Paragraph) BlockOutcome
	onRawBlock  func(pandoc.RawBlock) BlockOutcome

	onInlines func(pandoc.Inlines) pandoc.Inlines
	onBlocks  func(pandoc.Blocks) pandoc.Blocks
}

func New() *Filter { return &Filter{} }

func (f *Filter) WithSuperscript(fn func(pandoc.Superscript) InlineOutcome) *Filter {
	f.onSuperscript = fn
	return f
}

func (f *Filter) WithShortcode(fn func(pandoc.Shortcode) InlineOutcome) *Filter {
	f.onShortcode = fn
	return f
}

func (f *Filter) WithNoteReference(fn func(pandoc.NoteReference) InlineOutcome) *Filter {
	f.onNoteReference = fn
	return f
}

func (f *Filter) WithAttrInline(fn func(pandoc.AttrInline) InlineOutcome) *Filter {
	f.onAttrInline = fn
	return f
}

func (f *Filter) WithHeader(fn func(pandoc.Header) BlockOutcome) *Filter {
	f.onHeader = fn
	return f
}

func (f *Filter) WithParagraph(fn func(pandoc.Paragraph) BlockOutcome) *Filter {
	f.onParagraph = fn
	return f
}

func (f *Filter) WithRawBlock(fn func(pandoc.RawBlock) BlockOutcome) *Filter {
	f.onRawBlock = fn
	return f
}

func (f *Filter) WithInlines(fn func(pandoc.Inlines) pandoc.Inlines) *Filter {
	f.onInlines = fn
	return f
}

func (f *Filter) WithBlocks(fn func(pandoc.Blocks) pandoc.Blocks) *Filter {
	f.onBlocks = fn
	return f
}
