package pandoc

import "github.com/quarto-dev/quarto-markdown-pandoc-go/location"

// Inline is implemented by every inline-level document node, plus the
// transient Quarto-specific variants (Shortcode, NoteReference, AttrInline)
// that desugaring rewrites away before a document is considered final.
type Inline interface {
	inlineMarker()
	SourceRange() location.Range
}

// Inlines is a sequence of inline nodes.
type Inlines []Inline

type QuoteType int

const (
	SingleQuote QuoteType = iota
	DoubleQuote
)

type MathType int

const (
	InlineMath MathType = iota
	DisplayMath
)

// Target is a link or image's destination URL plus optional title.
type Target struct {
	URL   string
	Title string
}

type Str struct {
	Text     string
	Filename *string
	Range    location.Range
}

type Emph struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type Underline struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type Strong struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type Strikeout struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type Superscript struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type Subscript struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type SmallCaps struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type Quoted struct {
	QuoteType QuoteType
	Content   Inlines
	Filename  *string
	Range     location.Range
}

type Cite struct {
	Citations []Citation
	Content   Inlines
	Filename  *string
	Range     location.Range
}

type Code struct {
	Attr     Attr
	Text     string
	Filename *string
	Range    location.Range
}

type Space struct {
	Filename *string
	Range    location.Range
}

type SoftBreak struct {
	Filename *string
	Range    location.Range
}

type LineBreak struct {
	Filename *string
	Range    location.Range
}

type Math struct {
	MathType MathType
	Text     string
	Filename *string
	Range    location.Range
}

type RawInline struct {
	Format   string
	Text     string
	Filename *string
	Range    location.Range
}

type Link struct {
	Attr     Attr
	Content  Inlines
	Target   Target
	Filename *string
	Range    location.Range
}

type Image struct {
	Attr     Attr
	Content  Inlines
	Target   Target
	Filename *string
	Range    location.Range
}

type Note struct {
	Content  Blocks
	Filename *string
	Range    location.Range
}

type Span struct {
	Attr     Attr
	Content  Inlines
	Filename *string
	Range    location.Range
}

// NoteReference is the transient lowering representation of a footnote
// reference ("[^id]") before desugaring rewrites it into a Span carrying a
// "quarto-note-reference" class and a "reference-id" key-value pair.
type NoteReference struct {
	ID       string
	Filename *string
	Range    location.Range
}

// AttrInline is the transient lowering representation of a trailing
// "{...}" attribute block attached to an inline sequence (e.g. a header's
// "## Title {#id}"). It must never survive desugaring: any AttrInline left
// in the tree after the attribute-attachment passes run is a fatal error.
type AttrInline struct {
	Value    Attr
	Filename *string
	Range    location.Range
}

func (Str) inlineMarker()           {}
func (Emph) inlineMarker()          {}
func (Underline) inlineMarker()     {}
func (Strong) inlineMarker()        {}
func (Strikeout) inlineMarker()     {}
func (Superscript) inlineMarker()   {}
func (Subscript) inlineMarker()     {}
func (SmallCaps) inlineMarker()     {}
func (Quoted) inlineMarker()        {}
func (Cite) inlineMarker()          {}
func (Code) inlineMarker()          {}
func (Space) inlineMarker()         {}
func (SoftBreak) inlineMarker()     {}
func (LineBreak) inlineMarker()     {}
func (Math) inlineMarker()          {}
func (RawInline) inlineMarker()     {}
func (Link) inlineMarker()          {}
func (Image) inlineMarker()         {}
func (Note) inlineMarker()          {}
func (Span) inlineMarker()          {}
func (NoteReference) inlineMarker() {}
func (AttrInline) inlineMarker()    {}

func (i Str) SourceRange() location.Range           { return i.Range }
func (i Emph) SourceRange() location.Range          { return i.Range }
func (i Underline) SourceRange() location.Range     { return i.Range }
func (i Strong) SourceRange() location.Range        { return i.Range }
func (i Strikeout) SourceRange() location.Range     { return i.Range }
func (i Superscript) SourceRange() location.Range   { return i.Range }
func (i Subscript) SourceRange() location.Range     { return i.Range }
func (i SmallCaps) SourceRange() location.Range     { return i.Range }
func (i Quoted) SourceRange() location.Range        { return i.Range }
func (i Cite) SourceRange() location.Range          { return i.Range }
func (i Code) SourceRange() location.Range          { return i.Range }
func (i Space) SourceRange() location.Range         { return i.Range }
func (i SoftBreak) SourceRange() location.Range     { return i.Range }
func (i LineBreak) SourceRange() location.Range     { return i.Range }
func (i Math) SourceRange() location.Range          { return i.Range }
func (i RawInline) SourceRange() location.Range     { return i.Range }
func (i Link) SourceRange() location.Range          { return i.Range }
func (i Image) SourceRange() location.Range         { return i.Range }
func (i Note) SourceRange() location.Range          { return i.Range }
func (i Span) SourceRange() location.Range          { return i.Range }
func (i NoteReference) SourceRange() location.Range { return i.Range }
func (i AttrInline) SourceRange() location.Range    { return i.Range }
