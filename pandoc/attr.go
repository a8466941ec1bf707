// Package pandoc is the document model produced by lowering and consumed by
// an external writer: a closed set of Block and Inline variants mirroring
// Pandoc's own AST, plus the Attr/Citation/Shortcode/Metadata support types.
package pandoc

// Attr is Pandoc's (id, classes, key-value) triple, attached to most block
// and inline variants that support HTML-like attributes.
type Attr struct {
	ID      string
	Classes []string
	KV      map[string]string
}

// EmptyAttr returns the attribute value used when a node carries none.
func EmptyAttr() Attr {
	return Attr{KV: map[string]string{}}
}

// IsEmpty reports whether the attribute has no id, no classes and no
// key-value pairs.
func (a Attr) IsEmpty() bool {
	return a.ID == "" && len(a.Classes) == 0 && len(a.KV) == 0
}
