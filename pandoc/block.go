package pandoc

import "github.com/quarto-dev/quarto-markdown-pandoc-go/location"

// Block is implemented by every block-level document node. The marker
// method is unexported so the set of variants is closed to this package;
// callers type-switch exhaustively instead of matching on interface{}.
type Block interface {
	blockMarker()
	SourceRange() location.Range
}

// Blocks is a sequence of block nodes.
type Blocks []Block

// ListAttr carries the starting number, numbering style and delimiter
// style for an OrderedList.
type ListAttr struct {
	Start int
	Style ListNumberStyle
	Delim ListNumberDelim
}

type ListNumberStyle int

const (
	DefaultStyle ListNumberStyle = iota
	Example
	Decimal
	LowerRoman
	UpperRoman
	LowerAlpha
	UpperAlpha
)

type ListNumberDelim int

const (
	DefaultDelim ListNumberDelim = iota
	Period
	OneParen
	TwoParens
)

// DefinitionItem is one term/definitions pair inside a DefinitionList.
type DefinitionItem struct {
	Term        Inlines
	Definitions []Blocks
}

type Plain struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type Paragraph struct {
	Content  Inlines
	Filename *string
	Range    location.Range
}

type LineBlock struct {
	Content  []Inlines
	Filename *string
	Range    location.Range
}

type CodeBlock struct {
	Attr     Attr
	Text     string
	Filename *string
	Range    location.Range
}

type RawBlock struct {
	Format   string
	Text     string
	Filename *string
	Range    location.Range
}

type BlockQuote struct {
	Content  Blocks
	Filename *string
	Range    location.Range
}

type OrderedList struct {
	Attr     ListAttr
	Content  []Blocks
	Filename *string
	Range    location.Range
}

type BulletList struct {
	Content  []Blocks
	Filename *string
	Range    location.Range
}

type DefinitionList struct {
	Items    []DefinitionItem
	Filename *string
	Range    location.Range
}

type Header struct {
	Level    int
	Attr     Attr
	Content  Inlines
	Filename *string
	Range    location.Range
}

type HorizontalRule struct {
	Filename *string
	Range    location.Range
}

type Table struct {
	Attr     Attr
	Caption  Caption
	ColSpecs []ColSpec
	Head     TableHead
	Bodies   []TableBody
	Foot     TableFoot
	Filename *string
	Range    location.Range
}

type Figure struct {
	Attr     Attr
	Caption  Caption
	Content  Blocks
	Filename *string
	Range    location.Range
}

type Div struct {
	Attr     Attr
	Content  Blocks
	Filename *string
	Range    location.Range
}

// MetaBlock carries YAML front matter (a bare minus_metadata node) that has
// not yet been folded into the document's top-level Metadata. It is
// produced directly as a RawBlock with format "quarto_minus_metadata"
// rather than as a distinct Block variant, matching the observable shape
// the original resolves to. Metadata extraction (C8) does not read this
// block: qmd.Read extracts the front matter from the document's source text.

func (Plain) blockMarker()          {}
func (Paragraph) blockMarker()      {}
func (LineBlock) blockMarker()      {}
func (CodeBlock) blockMarker()      {}
func (RawBlock) blockMarker()       {}
func (BlockQuote) blockMarker()     {}
func (OrderedList) blockMarker()    {}
func (BulletList) blockMarker()     {}
func (DefinitionList) blockMarker() {}
func (Header) blockMarker()         {}
func (HorizontalRule) blockMarker() {}
func (Table) blockMarker()          {}
func (Figure) blockMarker()         {}
func (Div) blockMarker()            {}

func (b Plain) SourceRange() location.Range          { return b.Range }
func (b Paragraph) SourceRange() location.Range      { return b.Range }
func (b LineBlock) SourceRange() location.Range      { return b.Range }
func (b CodeBlock) SourceRange() location.Range      { return b.Range }
func (b RawBlock) SourceRange() location.Range       { return b.Range }
func (b BlockQuote) SourceRange() location.Range     { return b.Range }
func (b OrderedList) SourceRange() location.Range    { return b.Range }
func (b BulletList) SourceRange() location.Range     { return b.Range }
func (b DefinitionList) SourceRange() location.Range { return b.Range }
func (b Header) SourceRange() location.Range         { return b.Range }
func (b HorizontalRule) SourceRange() location.Range { return b.Range }
func (b Table) SourceRange() location.Range          { return b.Range }
func (b Figure) SourceRange() location.Range         { return b.Range }
func (b Div) SourceRange() location.Range            { return b.Range }
