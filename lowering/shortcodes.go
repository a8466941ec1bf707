package lowering

import (
	"strconv"
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

func init() {
	register("shortcode", shortcodeHandlerFor(false))
	register("shortcode_escaped", shortcodeHandlerFor(true))
	register("shortcode_name", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.ShortcodeArgString(n.Content(source)), nil
	})
	register("shortcode_naked_string", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.ShortcodeArgString(n.Content(source)), nil
	})
	register("shortcode_string", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.ShortcodeArgString(strings.Trim(n.Content(source), `"'`)), nil
	})
	register("shortcode_number", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(n.Content(source)), 64)
		if err != nil {
			return pandoc.ShortcodeArgNumber(0), nil
		}
		return pandoc.ShortcodeArgNumber(f), nil
	})
	register("shortcode_boolean", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.ShortcodeArgBoolean(strings.TrimSpace(n.Content(source)) == "true"), nil
	})
	register("shortcode_keyword_param", shortcodeKeywordParamHandler)
}

// shortcodeHandlerFor builds the handler for "shortcode" and
// "shortcode_escaped" nodes, which share a child-gathering shape: the
// first String-valued child (shortcode_name or a naked/quoted string that
// precedes the name) becomes the shortcode's name, every later one appends
// to positional_args, shortcode_keyword_param values merge into
// keyword_args, and a nested shortcode/shortcode_escaped child appends as a
// ShortcodeArgShortcode positional argument.
func shortcodeHandlerFor(escaped bool) handler {
	return func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		var name string
		var positional []pandoc.ShortcodeArg
		keyword := map[string]pandoc.ShortcodeArg{}
		for _, c := range children {
			switch v := c.Value.(type) {
			case pandoc.ShortcodeArgString:
				if name == "" {
					name = string(v)
				} else {
					positional = append(positional, v)
				}
			case pandoc.ShortcodeArgNumber, pandoc.ShortcodeArgBoolean:
				positional = append(positional, v.(pandoc.ShortcodeArg))
			case pandoc.ShortcodeArgKeyValue:
				for k, val := range v {
					keyword[k] = val
				}
			case pandoc.Shortcode:
				positional = append(positional, pandoc.ShortcodeArgShortcode{Shortcode: v})
			}
		}
		return pandoc.Shortcode{
			IsEscaped:  escaped,
			Name:       name,
			Positional: positional,
			Keyword:    keyword,
			Range:      nodeRange(n),
		}, nil
	}
}

// shortcodeKeywordParamHandler folds a "key = value" keyword argument: the
// first shortcode_name child supplies the key, the next value-bearing
// child supplies the value. The result is a single-entry map so the parent
// shortcode handler can merge several keyword params uniformly.
func shortcodeKeywordParamHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var key string
	var value pandoc.ShortcodeArg
	for _, c := range children {
		switch v := c.Value.(type) {
		case pandoc.ShortcodeArgString:
			if key == "" {
				key = string(v)
			} else {
				value = v
			}
		case pandoc.ShortcodeArgNumber:
			value = v
		case pandoc.ShortcodeArgBoolean:
			value = v
		}
	}
	if key == "" {
		return pandoc.ShortcodeArgKeyValue{}, nil
	}
	return pandoc.ShortcodeArgKeyValue{key: value}, nil
}
