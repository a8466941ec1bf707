package lowering

import (
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

// keyValueSpec is a single folded key_value_specifier: a key plus its
// (quote-stripped) value.
type keyValueSpec struct {
	key, value string
}

func init() {
	register("id_specifier", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.Attr{ID: strings.TrimPrefix(n.Content(source), "#")}, nil
	})
	register("class_specifier", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return pandoc.Attr{Classes: []string{strings.TrimPrefix(n.Content(source), ".")}}, nil
	})
	register("key_value_key", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return n.Content(source), nil
	})
	register("key_value_value", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return strings.Trim(n.Content(source), `"'`), nil
	})
	register("key_value_specifier", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		var key, value string
		for _, c := range children {
			if s, ok := c.Value.(string); ok {
				if key == "" {
					key = s
				} else {
					value = s
				}
			}
		}
		return keyValueSpec{key: key, value: value}, nil
	})
	register("commonmark_attribute", commonmarkAttributeHandler)
}

// commonmarkAttributeHandler folds id_specifier, class_specifier and
// key_value_specifier children into a single Attr: id_specifier sets the
// id, class_specifier appends a class, key_value_specifier merges a
// key/value pair.
func commonmarkAttributeHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	attr := pandoc.EmptyAttr()
	for _, c := range children {
		switch v := c.Value.(type) {
		case pandoc.Attr:
			if v.ID != "" {
				attr.ID = v.ID
			}
			attr.Classes = append(attr.Classes, v.Classes...)
		case keyValueSpec:
			attr.KV[v.key] = v.value
		}
	}
	return attr, nil
}
