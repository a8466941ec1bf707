package pandoc

import (
	"strconv"
	"strings"
	"unicode"
)

func collectText(inlines Inlines, b *strings.Builder) {
	for _, inline := range inlines {
		switch v := inline.(type) {
		case Str:
			b.WriteString(v.Text)
		case Space, SoftBreak, LineBreak:
			b.WriteString(" ")
		case Emph:
			collectText(v.Content, b)
		case Strong:
			collectText(v.Content, b)
		case Code:
			b.WriteString(v.Text)
		}
	}
}

// AutoGeneratedID derives a GitHub-style slug from a header's inline
// content: lowercase, non-alphanumeric runs become a single hyphen, leading
// and trailing hyphens are dropped.
func AutoGeneratedID(inlines Inlines) string {
	var b strings.Builder
	collectText(inlines, &b)

	lowered := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '-'
	}, b.String())

	parts := strings.Split(lowered, "-")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, "-")
}

// UniqueAutoID derives an id the way AutoGeneratedID does, then
// disambiguates it against a set of already-assigned ids (e.g. two headers
// with identical text) by appending "-1", "-2", ... until the result is
// unused. The caller owns `existing` and is expected to record the
// returned id in it before the next call.
func UniqueAutoID(existing map[string]bool, inlines Inlines) string {
	base := AutoGeneratedID(inlines)
	if base == "" {
		base = "section"
	}
	if !existing[base] {
		return base
	}
	for n := 1; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !existing[candidate] {
			return candidate
		}
	}
}
