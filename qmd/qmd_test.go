package qmd_test

import (
	"testing"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qconfig"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/qmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Read itself needs a real *sitter.Tree from a loaded Quarto grammar, which
// is a caller responsibility this module doesn't own (see SPEC_FULL.md §6);
// these tests exercise the pieces of the pipeline that don't depend on one.

func TestParseMetadataResolvesFrontMatter(t *testing.T) {
	source := "---\ntitle: Hello *world*\ndraft: true\n---\nbody"
	reparse := func(md string) (pandoc.Document, error) {
		return pandoc.Document{
			Meta:   pandoc.MetaMap{},
			Blocks: pandoc.Blocks{pandoc.Paragraph{Content: pandoc.Inlines{pandoc.Str{Text: md}}}},
		}, nil
	}
	meta, err := qmd.ParseMetadata(source, qconfig.Default(), reparse)
	require.NoError(t, err)
	assert.Equal(t, pandoc.MetaBool(true), meta["draft"])
	inlines, ok := meta["title"].(pandoc.MetaInlines)
	require.True(t, ok)
	assert.Equal(t, "Hello *world*", inlines[0].(pandoc.Str).Text)
}

func TestDesugarRewritesShortcode(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Paragraph{Content: pandoc.Inlines{
				pandoc.Shortcode{
					Name:       "video",
					Positional: []pandoc.ShortcodeArg{pandoc.ShortcodeArgString("clip.mp4")},
				},
			}},
		},
	}
	out, errs := qmd.Desugar(doc)
	require.Empty(t, errs)
	para := out.Blocks[0].(pandoc.Paragraph)
	span := para.Content[0].(pandoc.Span)
	assert.Contains(t, span.Attr.Classes, "quarto-shortcode__")
	assert.Equal(t, "1", span.Attr.KV["data-is-shortcode"])
}

func TestDiagnosticString(t *testing.T) {
	d := qmd.Diagnostic{Severity: qmd.Warning, Message: "Error: Missing text at 0:0"}
	assert.Equal(t, "Warning: Error: Missing text at 0:0", d.String())
}
