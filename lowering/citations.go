package lowering

import (
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/location"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

type citationID struct {
	key  string
	mode pandoc.CitationMode
}

func init() {
	register("citation", citationHandler)
	register("citation_id_author_in_text", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return citationID{key: strings.TrimPrefix(n.Content(source), "@"), mode: pandoc.AuthorInText}, nil
	})
	register("citation_id_suppress_author", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		key := strings.TrimPrefix(strings.TrimPrefix(n.Content(source), "-"), "@")
		return citationID{key: key, mode: pandoc.SuppressAuthor}, nil
	})
}

// citationHandler lowers a single citation into a Cite carrying one
// Citation. Which of the two citation_id_* children is present decides the
// mode directly: citation_id_suppress_author marks a "-@key" citation,
// citation_id_author_in_text marks a plain "@key" one. AuthorInText is
// later downgraded to NormalCitation by makeCiteInline below when the
// citation is found inside a bracketed compound (an inline_link-shaped
// "[... ; ...]" sequence that make_cite_inline splits).
func citationHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var id citationID
	for _, c := range children {
		if cid, ok := c.Value.(citationID); ok {
			id = cid
		}
	}
	raw := n.Content(source)
	return pandoc.Cite{
		Citations: []pandoc.Citation{{ID: id.key, Mode: id.mode}},
		Content:   pandoc.Inlines{pandoc.Str{Text: raw, Range: nodeRange(n)}},
		Range:     nodeRange(n),
	}, nil
}

// makeCiteInline implements the compound-citation disambiguation rule for a
// bracketed "[@a; @b]" sequence: split the already-lowered content on every
// Str(";") separator, require each slice to contain at least one Cite,
// move the inlines before the slice's first Cite into its prefix and
// everything after it into its suffix (see extractOneCite), and downgrade
// AuthorInText to NormalCitation since a bracketed citation is never
// rendered author-in-text. Returns false if any slice contains no Cite, in which case
// the caller should leave the inlines as a plain bracketed span instead.
func makeCiteInline(content pandoc.Inlines, r location.Range) (pandoc.Cite, bool) {
	groups := splitOnSemicolon(content)
	citations := make([]pandoc.Citation, 0, len(groups))
	for _, group := range groups {
		cite, prefix, suffix, ok := extractOneCite(group)
		if !ok {
			return pandoc.Cite{}, false
		}
		c := cite.Citations[0]
		c.Prefix = prefix
		c.Suffix = suffix
		if c.Mode == pandoc.AuthorInText {
			c.Mode = pandoc.NormalCitation
		}
		citations = append(citations, c)
	}
	if len(citations) == 0 {
		return pandoc.Cite{}, false
	}
	return pandoc.Cite{Citations: citations, Range: r}, true
}

func splitOnSemicolon(content pandoc.Inlines) []pandoc.Inlines {
	var groups []pandoc.Inlines
	var current pandoc.Inlines
	for _, in := range content {
		if s, ok := in.(pandoc.Str); ok && strings.TrimSpace(s.Text) == ";" {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, in)
	}
	groups = append(groups, current)
	return groups
}

// extractOneCite finds the first Cite in group, spreading everything before
// it into prefix and everything after (including, unusually, any further
// Cite in the same group) into suffix. A second Cite in a group is not a
// shape error; it's folded in as-is, matching make_cite_inline's fold which
// only ever special-cases the first citation it sees.
func extractOneCite(group pandoc.Inlines) (pandoc.Cite, pandoc.Inlines, pandoc.Inlines, bool) {
	var prefix, suffix pandoc.Inlines
	var found *pandoc.Cite
	for _, in := range group {
		if c, ok := in.(pandoc.Cite); ok && found == nil {
			cp := c
			found = &cp
			continue
		}
		if found == nil {
			prefix = append(prefix, in)
		} else {
			suffix = append(suffix, in)
		}
	}
	if found == nil {
		return pandoc.Cite{}, nil, nil, false
	}
	return *found, prefix, suffix, true
}

func containsCite(content pandoc.Inlines) bool {
	for _, in := range content {
		if _, ok := in.(pandoc.Cite); ok {
			return true
		}
	}
	return false
}
