// Package diagnostics implements the error probe (C4): a read-only scan of
// an already-parsed tree that classifies every error-shaped node before
// lowering ever runs, so a malformed parse is reported with precise
// positions instead of surfacing as an obscure lowering failure.
package diagnostics

import (
	"fmt"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
)

// Kind distinguishes the two ways a node can be error-shaped.
type Kind int

const (
	// Unexpected marks a node the parser itself emitted as "ERROR".
	Unexpected Kind = iota
	// Missing marks a node with an empty byte range that isn't allowed to
	// be empty.
	Missing
)

// emptyRangeAllowed lists node kinds that may legitimately have a
// zero-width byte range without being a missing-node error.
var emptyRangeAllowed = map[string]bool{
	"block_continuation": true,
}

// Finding is one error-shaped node discovered during the probe.
type Finding struct {
	Kind  Kind
	Node  cst.Node
	Point cst.Point
}

// Message renders a Finding using the probe's two fixed formats.
func (f Finding) Message(source []byte) string {
	p := f.Node.StartPoint()
	switch f.Kind {
	case Missing:
		return fmt.Sprintf("Error: Missing %s at %d:%d", f.Node.Type(), p.Row, p.Column)
	default:
		return fmt.Sprintf("Error: Unexpected %s at %d:%d", f.Node.Content(source), p.Row, p.Column)
	}
}

// classify reports whether a node is error-shaped and, if so, how.
func classify(n cst.Node) (Kind, bool) {
	if n.Type() == "ERROR" {
		return Unexpected, true
	}
	if n.StartByte() == n.EndByte() && !emptyRangeAllowed[n.Type()] {
		return Missing, true
	}
	return 0, false
}

// Probe walks the tree rooted at cursor's current node and returns every
// error-shaped node it finds. It does not descend into the children of an
// error-shaped node: an ERROR node's subtree is not independently
// error-shaped, it's a symptom of the same parse failure.
func Probe(cursor cst.Cursor, source []byte) ([]Finding, error) {
	var findings []Finding
	depth := 1
	for {
		n := cursor.CurrentNode()
		kind, isError := classify(n)
		if isError {
			findings = append(findings, Finding{Kind: kind, Node: n, Point: n.StartPoint()})
		}

		if !isError && cursor.GoToFirstChild() {
			depth++
			if depth > cst.MaxWalkDepth {
				return findings, cst.ErrMaxDepthExceeded
			}
			continue
		}
		for {
			if cursor.GoToNextSibling() {
				break
			}
			if !cursor.GoToParent() {
				return findings, nil
			}
			depth--
		}
	}
}

// IsClean reports whether a tree has no error-shaped nodes at all,
// shorthand for len(Probe(...)) == 0 in the common case where the caller
// doesn't need the findings themselves.
func IsClean(cursor cst.Cursor, source []byte) (bool, error) {
	findings, err := Probe(cursor, source)
	if err != nil {
		return false, err
	}
	return len(findings) == 0, nil
}
