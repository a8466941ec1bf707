package lowering

import (
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

type codeAttrKind int

const (
	rawAttrPart codeAttrKind = iota
	languageAttrPart
	infoStringPart
)

type codeAttrPart struct {
	Kind   codeAttrKind
	Attr   pandoc.Attr
	Format string
}

func init() {
	register("language_attribute", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		lang := strings.TrimSpace(n.Content(source))
		return codeAttrPart{Kind: languageAttrPart, Attr: pandoc.Attr{Classes: []string{lang}, KV: map[string]string{}}}, nil
	})
	register("raw_attribute", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		raw := strings.TrimSpace(n.Content(source))
		format := strings.TrimPrefix(strings.Trim(raw, "{}"), "=")
		return codeAttrPart{Kind: rawAttrPart, Format: format}, nil
	})
	register("info_string", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return codeAttrPart{Kind: infoStringPart, Attr: parseInfoString(n.Content(source))}, nil
	})
	register("code_fence_content", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return n.Content(source), nil
	})

	register("fenced_code_block", fencedCodeBlockHandler)
	register("indented_code_block", indentedCodeBlockHandler)
}

// parseInfoString lowers a fence's info string into a single-class Attr:
// the entire text becomes one class, matching the grammar's info_string
// node, which is never split into multiple classes or key/value pairs.
func parseInfoString(text string) pandoc.Attr {
	text = strings.TrimSpace(text)
	if text == "" {
		return pandoc.EmptyAttr()
	}
	return pandoc.Attr{Classes: []string{text}, KV: map[string]string{}}
}

func mergeAttr(into pandoc.Attr, part pandoc.Attr) pandoc.Attr {
	if part.ID != "" {
		into.ID = part.ID
	}
	into.Classes = append(into.Classes, part.Classes...)
	for k, v := range part.KV {
		into.KV[k] = v
	}
	return into
}

// fencedCodeBlockHandler folds commonmark_attribute/raw_attribute/
// language_attribute/info_string children in source document order.
// commonmark_attribute, language_attribute and raw_attribute apply
// cumulatively; info_string, when present, fully replaces whatever Attr had
// been assembled so far -- order matters, and this is deliberately not a
// left-to-right merge of all four sources.
func fencedCodeBlockHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	attr := pandoc.EmptyAttr()
	format := ""
	var textParts []string

	for _, c := range children {
		switch v := c.Value.(type) {
		case codeAttrPart:
			switch v.Kind {
			case infoStringPart:
				attr = v.Attr
			case rawAttrPart:
				format = v.Format
			default:
				attr = mergeAttr(attr, v.Attr)
			}
		case pandoc.Attr:
			attr = mergeAttr(attr, v)
		case string:
			textParts = append(textParts, v)
		}
	}

	text := strings.TrimSuffix(strings.Join(textParts, ""), "\n")
	if format != "" {
		return pandoc.RawBlock{Format: format, Text: text, Range: nodeRange(n)}, nil
	}
	return pandoc.CodeBlock{Attr: attr, Text: text, Range: nodeRange(n)}, nil
}

// indentedCodeBlockHandler strips the 4-space code indent and elides any
// block_continuation lines, whose own byte range is empty and therefore
// contribute nothing to the text.
func indentedCodeBlockHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	raw := n.Content(source)
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "    ")
	}
	text := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	return pandoc.CodeBlock{Attr: pandoc.EmptyAttr(), Text: text, Range: nodeRange(n)}, nil
}
