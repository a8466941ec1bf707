package lowering

import (
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qlog"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/location"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

func init() {
	register("emphasis", wrapInlines(func(content pandoc.Inlines, r location.Range) any {
		return pandoc.Emph{Content: content, Range: r}
	}))
	register("strong_emphasis", wrapInlines(func(content pandoc.Inlines, r location.Range) any {
		return pandoc.Strong{Content: content, Range: r}
	}))
	register("strikeout", wrapInlines(func(content pandoc.Inlines, r location.Range) any {
		return pandoc.Strikeout{Content: content, Range: r}
	}))
	register("superscript", wrapInlines(func(content pandoc.Inlines, r location.Range) any {
		return pandoc.Superscript{Content: content, Range: r}
	}))
	register("subscript", wrapInlines(func(content pandoc.Inlines, r location.Range) any {
		return pandoc.Subscript{Content: content, Range: r}
	}))

	register("raw_specifier", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		text := n.Content(source)
		return readerFormat(text), nil
	})

	register("code_span", codeSpanHandler)
	register("uri_autolink", uriAutolinkHandler)
	register("inline_link", inlineLinkHandler)
	register("image", inlineImageHandler)
}

// wrapInlines is the shared shape for every inline container whose only
// job is "collect my inline children, wrap them in a fixed variant": Emph,
// Strong, Strikeout, Superscript, Subscript all follow it. Underline and
// SmallCaps have no grammar node of their own: they only ever arise from
// class-peeling a span or link's attribute (see makeSpanInline).
func wrapInlines(build func(content pandoc.Inlines, r location.Range) any) handler {
	return func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		content, _ := collectInlines(children)
		return build(content, nodeRange(n)), nil
	}
}

// readerFormat implements the immediate "<name" -> "pandoc-reader:"+name
// substitution for inline raw-attribute specifiers. Unlike the block-level
// raw_attribute path (desugar's detectRawReaderFormat), this runs during
// lowering itself, not as a later desugar pass, because code_span's
// attribute is fully resolved by the time the span is built.
func readerFormat(text string) string {
	if strings.HasPrefix(text, "<") {
		return "pandoc-reader:" + strings.TrimPrefix(text, "<")
	}
	return text
}

func codeSpanHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	attr := pandoc.EmptyAttr()
	var format string
	for _, c := range children {
		if s, ok := c.Value.(string); ok {
			format = s
		}
		if a, ok := c.Value.(pandoc.Attr); ok {
			attr = a
		}
	}
	text := codeSpanText(n, source)
	if format != "" {
		return pandoc.RawInline{Format: format, Text: text, Range: nodeRange(n)}, nil
	}
	return pandoc.Code{Attr: attr, Text: text, Range: nodeRange(n)}, nil
}

// codeSpanText strips the surrounding backtick run a code_span carries.
func codeSpanText(n cst.Node, source []byte) string {
	raw := n.Content(source)
	trimmed := strings.Trim(raw, "`")
	return strings.TrimSpace(trimmed)
}

func uriAutolinkHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	raw := n.Content(source)
	url := strings.TrimSuffix(strings.TrimPrefix(raw, "<"), ">")
	return pandoc.Link{
		Content: pandoc.Inlines{pandoc.Str{Text: url, Range: nodeRange(n)}},
		Target:  pandoc.Target{URL: url},
		Attr:    pandoc.EmptyAttr(),
		Range:   nodeRange(n),
	}, nil
}

// inlineLinkHandler lowers "[...](...)" . A bracket with no destination/
// attribute whose content is a citation or compound citation (e.g. "[@a;
// @b, p. 10]") is a Cite rather than a Link, per make_cite_inline: a link
// target is never implied by citation syntax alone. Anything that doesn't
// have that shape -- including a failed cite attempt -- falls through to
// the same class-peeling dispatch make_span_inline performs: a non-empty
// target always wins as a Link, otherwise "smallcaps"/"ul"/"underline"
// classes are peeled into SmallCaps/Underline, and what's left is a plain
// Span.
func inlineLinkHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	content, target, attr := splitLinkChildren(children, "link")
	if target == (pandoc.Target{}) && attr.IsEmpty() && containsCite(content) {
		if cite, ok := makeCiteInline(content, nodeRange(n)); ok {
			return cite, nil
		}
	}
	return makeSpanInline(attr, target, content, nodeRange(n)), nil
}

func inlineImageHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	content, target, attr := splitLinkChildren(children, "image")
	return pandoc.Image{
		Content: content,
		Target:  target,
		Attr:    attr,
		Range:   nodeRange(n),
	}, nil
}

// makeSpanInline implements the class-peeling dispatch: a non-empty target
// always produces a Link (classes are never peeled off a link's attr);
// otherwise "smallcaps" is peeled into SmallCaps, "ul"/"underline" into
// Underline, recursing on the remaining attr so that e.g. a span carrying
// both "smallcaps" and "underline" nests the two wrappers; what's left once
// no peelable class remains becomes a plain Span.
func makeSpanInline(attr pandoc.Attr, target pandoc.Target, content pandoc.Inlines, r location.Range) pandoc.Inline {
	if target != (pandoc.Target{}) {
		return pandoc.Link{Attr: attr, Content: content, Target: target, Range: r}
	}
	if rest, ok := peelClass(attr, "smallcaps"); ok {
		if rest.IsEmpty() {
			return pandoc.SmallCaps{Content: content, Range: r}
		}
		return pandoc.SmallCaps{Content: pandoc.Inlines{makeSpanInline(rest, target, content, r)}, Range: r}
	}
	for _, class := range []string{"ul", "underline"} {
		if rest, ok := peelClass(attr, class); ok {
			if rest.IsEmpty() {
				return pandoc.Underline{Content: content, Range: r}
			}
			return pandoc.Underline{Content: pandoc.Inlines{makeSpanInline(rest, target, content, r)}, Range: r}
		}
	}
	return pandoc.Span{Attr: attr, Content: content, Range: r}
}

// peelClass removes the first occurrence of class from attr.Classes,
// reporting whether it was present.
func peelClass(attr pandoc.Attr, class string) (pandoc.Attr, bool) {
	for i, c := range attr.Classes {
		if c == class {
			rest := attr
			rest.Classes = append(append([]string{}, attr.Classes[:i]...), attr.Classes[i+1:]...)
			return rest, true
		}
	}
	return attr, false
}

type linkDestination struct {
	url, title string
}

// splitLinkChildren gathers a link or image's content, target and
// attribute from its children. A raw_attribute or language_attribute
// child -- a raw-format specifier -- is unsupported on links and images
// and is rejected with a warning and dropped, matching the original's
// "Raw attribute specifiers are unsupported in links and spans" check.
func splitLinkChildren(children []cst.ChildResult, kind string) (pandoc.Inlines, pandoc.Target, pandoc.Attr) {
	var content pandoc.Inlines
	var target pandoc.Target
	attr := pandoc.EmptyAttr()
	for _, c := range children {
		switch v := c.Value.(type) {
		case pandoc.Inline:
			content = append(content, v)
		case pandoc.Inlines:
			content = append(content, v...)
		case linkDestination:
			if v.url != "" {
				target.URL = v.url
			}
			if v.title != "" {
				target.Title = v.title
			}
		case pandoc.Attr:
			attr = mergeAttr(attr, v)
		case codeAttrPart:
			if v.Kind == rawAttrPart || v.Kind == languageAttrPart {
				qlog.L().Warnw("raw attribute specifiers are unsupported in links and spans, ignoring", "kind", kind)
			}
		}
	}
	return content, target, attr
}

func init() {
	register("link_destination", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return linkDestination{url: n.Content(source)}, nil
	})
	register("link_title", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		title := strings.Trim(n.Content(source), "\"'()")
		return linkDestination{title: title}, nil
	})
}
