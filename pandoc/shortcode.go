package pandoc

import "github.com/quarto-dev/quarto-markdown-pandoc-go/location"

// ShortcodeArg is a single shortcode argument value: a positional string,
// number or boolean, a nested shortcode, or a keyword-argument map (the
// value produced by folding a shortcode_keyword_param node).
type ShortcodeArg interface {
	shortcodeArgMarker()
}

type ShortcodeArgString string
type ShortcodeArgNumber float64
type ShortcodeArgBoolean bool

type ShortcodeArgShortcode struct {
	Shortcode Shortcode
}

type ShortcodeArgKeyValue map[string]ShortcodeArg

func (ShortcodeArgString) shortcodeArgMarker()    {}
func (ShortcodeArgNumber) shortcodeArgMarker()    {}
func (ShortcodeArgBoolean) shortcodeArgMarker()   {}
func (ShortcodeArgShortcode) shortcodeArgMarker() {}
func (ShortcodeArgKeyValue) shortcodeArgMarker()  {}

// Shortcode is the transient lowering representation of a Quarto
// "{{< ... >}}" shortcode, before desugaring rewrites it into a Span.
// IsEscaped marks a "{{{< ... >}}}" escaped shortcode, which desugars the
// same way but is never evaluated by a later processing stage.
type Shortcode struct {
	IsEscaped  bool
	Name       string
	Positional []ShortcodeArg
	Keyword    map[string]ShortcodeArg
	Filename   *string
	Range      location.Range
}

func (Shortcode) inlineMarker() {}

// SourceRange implements location.Located.
func (s Shortcode) SourceRange() location.Range { return s.Range }
