// Package desugar implements the C7 passes: rewriting transient lowering
// constructs (Shortcode, NoteReference, trailing attribute blocks) into
// their final document-model shape, and the handful of structural cleanups
// (citation-suffix attachment, single-image paragraphs becoming figures,
// trimmed superscripts) the original performs as one filter.Filter pass.
package desugar

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/filter"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qerr"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qlog"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

// rawReaderFormatSpecifier matches a RawBlock's leading "<name" reader
// specifier, the block-level counterpart of the immediate substitution
// lowering performs for inline code spans.
var rawReaderFormatSpecifier = regexp.MustCompile(`^<(?P<reader>.+)`)

// Run desugars doc, returning the rewritten document plus the fatal errors
// found along the way (a leftover AttrInline after every attribute pass has
// run). Warnings are not returned here; they are a concern of the error
// probe (C4), which runs before lowering ever produces a doc to desugar.
func Run(doc pandoc.Document) (pandoc.Document, []error) {
	var errs []error
	existingIDs := map[string]bool{}
	collectExistingIDs(doc.Blocks, existingIDs)

	f := filter.New().
		WithSuperscript(trimSuperscript).
		WithHeader(attachHeaderAttribute(existingIDs)).
		WithParagraph(imageParagraphToFigure).
		WithShortcode(shortcodeToSpan(&errs)).
		WithNoteReference(noteReferenceToSpan).
		WithRawBlock(detectRawReaderFormat).
		WithAttrInline(reportLeftoverAttr(&errs)).
		WithInlines(attachCitationSuffixes)

	rewritten := filter.FilterBlocks(doc.Blocks, f)

	// A final, separate pass merges adjacent Str inlines left over from the
	// rewrites above (and from lowering itself), matching merge_strs's
	// position as the last step of the original pipeline.
	mergeFilter := filter.New().WithInlines(mergeAdjacentStrs)
	rewritten = filter.FilterBlocks(rewritten, mergeFilter)

	qlog.L().Debugw("desugar: finished", "errors", len(errs))
	return pandoc.Document{Meta: doc.Meta, Blocks: rewritten}, errs
}

func collectExistingIDs(blocks pandoc.Blocks, ids map[string]bool) {
	for _, b := range blocks {
		switch v := b.(type) {
		case pandoc.Header:
			if v.Attr.ID != "" {
				ids[v.Attr.ID] = true
			}
		case pandoc.Div:
			collectExistingIDs(v.Content, ids)
		case pandoc.BlockQuote:
			collectExistingIDs(v.Content, ids)
		case pandoc.Figure:
			collectExistingIDs(v.Content, ids)
		}
	}
}

// trimSuperscript drops leading and trailing spaces from a superscript's
// content, matching the original's trim_inlines helper.
func trimSuperscript(s pandoc.Superscript) filter.InlineOutcome {
	content, changed := trimInlines(s.Content)
	if !changed {
		return filter.Unchanged(s)
	}
	s.Content = content
	return filter.Replace(true, s)
}

// trimInlines drops leading and trailing Space inlines, keeping interior
// runs of spaces as they are, and reports whether it changed anything.
func trimInlines(inlines pandoc.Inlines) (pandoc.Inlines, bool) {
	result := make(pandoc.Inlines, 0, len(inlines))
	atStart := true
	var spaceRun pandoc.Inlines
	changed := false

	for _, in := range inlines {
		if _, isSpace := in.(pandoc.Space); isSpace {
			if atStart {
				changed = true
				continue
			}
			spaceRun = append(spaceRun, in)
			continue
		}
		result = append(result, spaceRun...)
		spaceRun = nil
		result = append(result, in)
		atStart = false
	}
	if len(spaceRun) > 0 {
		changed = true
	}
	return result, changed
}

// attachHeaderAttribute pops a trailing AttrInline off a header's content
// and attaches it as the header's Attr, assigning an auto-generated id if
// none was given.
func attachHeaderAttribute(existingIDs map[string]bool) func(pandoc.Header) filter.BlockOutcome {
	return func(h pandoc.Header) filter.BlockOutcome {
		if len(h.Content) == 0 {
			return ensureHeaderID(h, existingIDs)
		}
		last, isAttr := h.Content[len(h.Content)-1].(pandoc.AttrInline)
		if !isAttr {
			return ensureHeaderID(h, existingIDs)
		}
		h.Attr = last.Value
		h.Content, _ = trimInlines(h.Content[:len(h.Content)-1])
		return ensureHeaderID(h, existingIDs)
	}
}

func ensureHeaderID(h pandoc.Header, existingIDs map[string]bool) filter.BlockOutcome {
	if h.Attr.ID == "" {
		h.Attr.ID = pandoc.UniqueAutoID(existingIDs, h.Content)
		existingIDs[h.Attr.ID] = true
	}
	return filter.UnchangedBlock(h)
}

// imageParagraphToFigure promotes a paragraph containing exactly one
// captioned Image into a Figure: the image's own Attr.ID becomes the
// figure's id, the image's alt-text content becomes the figure's long
// caption, and the image is demoted to a bare Plain wrapping the Image with
// its id cleared (its classes and key-value pairs stay on the image).
func imageParagraphToFigure(p pandoc.Paragraph) filter.BlockOutcome {
	if len(p.Content) != 1 {
		return filter.UnchangedBlock(p)
	}
	image, ok := p.Content[0].(pandoc.Image)
	if !ok || len(image.Content) == 0 {
		return filter.UnchangedBlock(p)
	}

	figureAttr := pandoc.Attr{ID: image.Attr.ID, KV: map[string]string{}}
	imageAttr := pandoc.Attr{Classes: image.Attr.Classes, KV: image.Attr.KV}
	newImage := image
	newImage.Attr = imageAttr

	return filter.ReplaceBlock(false, pandoc.Figure{
		Attr: figureAttr,
		Caption: pandoc.Caption{
			Long: &pandoc.Blocks{pandoc.Plain{Content: image.Content}},
		},
		Content: pandoc.Blocks{pandoc.Plain{Content: pandoc.Inlines{newImage}}},
	})
}

// shortcodeToSpan rewrites a Shortcode into the Span shape shortcode_to_span
// produces: a "quarto-shortcode__" span whose content is one
// "quarto-shortcode__-param" child span per name/positional/keyword
// argument, each carrying its raw/value (or key/value) data as attributes.
// A nested shortcode used as a keyword-argument value is unsupported and
// recorded as a fatal error (positional nesting is fine and recurses).
func shortcodeToSpan(errs *[]error) func(pandoc.Shortcode) filter.InlineOutcome {
	return func(sc pandoc.Shortcode) filter.InlineOutcome {
		return filter.Replace(false, shortcodeSpan(sc, errs))
	}
}

func shortcodeSpan(sc pandoc.Shortcode, errs *[]error) pandoc.Span {
	content := pandoc.Inlines{shortcodeValueSpan(sc.Name)}
	for _, arg := range sc.Positional {
		content = append(content, shortcodeArgValueSpan(arg, errs))
	}
	for key, arg := range sc.Keyword {
		content = append(content, shortcodeArgKeyValueSpan(key, arg, errs))
	}
	return pandoc.Span{
		Attr: pandoc.Attr{
			Classes: []string{"quarto-shortcode__"},
			KV:      map[string]string{"data-is-shortcode": "1"},
		},
		Content: content,
		Range:   sc.Range,
	}
}

// shortcodeArgValueSpan lowers one positional argument. A nested shortcode
// recurses into its own shortcodeSpan, wrapped the way the original wraps
// a recursive shortcode_to_span result in a bare Span.
func shortcodeArgValueSpan(arg pandoc.ShortcodeArg, errs *[]error) pandoc.Inline {
	switch v := arg.(type) {
	case pandoc.ShortcodeArgShortcode:
		return pandoc.Span{Content: pandoc.Inlines{shortcodeSpan(v.Shortcode, errs)}}
	default:
		return shortcodeValueSpan(shortcodeArgRaw(arg))
	}
}

// shortcodeArgKeyValueSpan lowers one keyword argument. Quarto doesn't
// support a nested shortcode as a keyword-argument value: that shape is a
// fatal error rather than a silently dropped or mangled span.
func shortcodeArgKeyValueSpan(key string, arg pandoc.ShortcodeArg, errs *[]error) pandoc.Inline {
	if _, ok := arg.(pandoc.ShortcodeArgShortcode); ok {
		*errs = append(*errs, &qerr.FatalError{
			Message: "Quarto does not support nested shortcodes in keyword-argument position",
		})
		return shortcodeKeyValueSpan(key, "")
	}
	return shortcodeKeyValueSpan(key, shortcodeArgRaw(arg))
}

// shortcodeArgRaw stringifies a leaf ShortcodeArg the way the original's
// to_string conversions for String/Number/Boolean args do.
func shortcodeArgRaw(arg pandoc.ShortcodeArg) string {
	switch v := arg.(type) {
	case pandoc.ShortcodeArgString:
		return string(v)
	case pandoc.ShortcodeArgNumber:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case pandoc.ShortcodeArgBoolean:
		return strconv.FormatBool(bool(v))
	default:
		return ""
	}
}

func shortcodeValueSpan(str string) pandoc.Span {
	return pandoc.Span{
		Attr: pandoc.Attr{
			Classes: []string{"quarto-shortcode__-param"},
			KV: map[string]string{
				"data-raw":          str,
				"data-value":        str,
				"data-is-shortcode": "1",
			},
		},
	}
}

func shortcodeKeyValueSpan(key, value string) pandoc.Span {
	return pandoc.Span{
		Attr: pandoc.Attr{
			Classes: []string{"quarto-shortcode__-param"},
			KV: map[string]string{
				"data-raw":          key + " = " + value,
				"data-key":          key,
				"data-value":        value,
				"data-is-shortcode": "1",
			},
		},
	}
}

// mergeAdjacentStrs coalesces consecutive Str inlines into a single Str
// with concatenated text, matching merge_strs. Running this pass on its
// own output is a no-op: no two Str inlines ever end up adjacent.
func mergeAdjacentStrs(inlines pandoc.Inlines) pandoc.Inlines {
	result := make(pandoc.Inlines, 0, len(inlines))
	for _, in := range inlines {
		if s, ok := in.(pandoc.Str); ok {
			if last := len(result) - 1; last >= 0 {
				if prev, ok := result[last].(pandoc.Str); ok {
					prev.Text += s.Text
					result[last] = prev
					continue
				}
			}
		}
		result = append(result, in)
	}
	return result
}

func noteReferenceToSpan(ref pandoc.NoteReference) filter.InlineOutcome {
	return filter.Replace(false, pandoc.Span{
		Attr: pandoc.Attr{
			Classes: []string{"quarto-note-reference"},
			KV:      map[string]string{"reference-id": ref.ID},
		},
		Range: ref.Range,
	})
}

// detectRawReaderFormat matches a RawBlock's text against the "<name"
// reader-format specifier and rewrites its Format to "pandoc-reader:name"
// when found. This is the block-level counterpart to the immediate
// substitution lowering performs for code_span: it runs here, over the
// already-lowered RawBlock, rather than during lowering itself.
func detectRawReaderFormat(rb pandoc.RawBlock) filter.BlockOutcome {
	m := rawReaderFormatSpecifier.FindStringSubmatch(rb.Text)
	if m == nil {
		return filter.UnchangedBlock(rb)
	}
	rb.Format = "pandoc-reader:" + m[1]
	return filter.ReplaceBlock(false, rb)
}

// reportLeftoverAttr is the fatal leftover-Attr check: any AttrInline that
// the header-attribute pass (the only attribute-attachment pass) did not
// consume means an attribute block attached to
// something this package doesn't know how to carry an Attr on. It is
// dropped from the output and recorded as a fatal error.
func reportLeftoverAttr(errs *[]error) func(pandoc.AttrInline) filter.InlineOutcome {
	return func(a pandoc.AttrInline) filter.InlineOutcome {
		*errs = append(*errs, &qerr.FatalError{
			Message: fmt.Sprintf("found attr in desugar: %v - this should have been removed", a.Value),
			Range:   a.Range,
		})
		return filter.Replace(false)
	}
}

// attachCitationSuffixes implements the citation-suffix-attachment state
// machine: a simple citation (single citation, no existing prefix/suffix)
// followed by a space and then a Span containing only Str/Space inlines has
// that span's content folded into the citation's suffix and the
// intervening space dropped.
func attachCitationSuffixes(inlines pandoc.Inlines) pandoc.Inlines {
	const (
		stateNormal = iota
		stateSawCite
		stateSawSpace
	)

	var result pandoc.Inlines
	state := stateNormal
	var pending *pandoc.Cite

	flushPending := func() {
		if pending != nil {
			result = append(result, *pending)
			pending = nil
		}
	}

	for _, in := range inlines {
		switch state {
		case stateNormal:
			if cite, ok := in.(pandoc.Cite); ok && isSimpleCite(cite) {
				c := cite
				pending = &c
				state = stateSawCite
			} else {
				result = append(result, in)
			}
		case stateSawCite:
			if _, ok := in.(pandoc.Space); ok {
				state = stateSawSpace
			} else {
				flushPending()
				result = append(result, in)
				state = stateNormal
			}
		case stateSawSpace:
			if span, ok := in.(pandoc.Span); ok && isStrOrSpaceOnly(span.Content) {
				pending.Citations[0].Suffix = append(pending.Citations[0].Suffix, span.Content...)
				flushPending()
				state = stateNormal
			} else {
				flushPending()
				result = append(result, pandoc.Space{})
				result = append(result, in)
				state = stateNormal
			}
		}
	}
	flushPending()
	if state == stateSawSpace {
		result = append(result, pandoc.Space{})
	}
	return result
}

func isSimpleCite(c pandoc.Cite) bool {
	return len(c.Citations) == 1 && len(c.Citations[0].Prefix) == 0 && len(c.Citations[0].Suffix) == 0
}

func isStrOrSpaceOnly(inlines pandoc.Inlines) bool {
	for _, in := range inlines {
		switch in.(type) {
		case pandoc.Str, pandoc.Space:
		default:
			return false
		}
	}
	return true
}
