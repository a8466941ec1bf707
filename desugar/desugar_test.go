package desugar_test

import (
	"testing"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/desugar"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortcodeDesugarsToSpan(t *testing.T) {
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
	out, errs := desugar.Run(doc)
	require.Empty(t, errs)
	para := out.Blocks[0].(pandoc.Paragraph)
	span := para.Content[0].(pandoc.Span)
	assert.Equal(t, []string{"quarto-shortcode__"}, span.Attr.Classes)
	assert.Equal(t, "1", span.Attr.KV["data-is-shortcode"])
	require.Len(t, span.Content, 2)

	nameSpan := span.Content[0].(pandoc.Span)
	assert.Equal(t, []string{"quarto-shortcode__-param"}, nameSpan.Attr.Classes)
	assert.Equal(t, "video", nameSpan.Attr.KV["data-value"])

	argSpan := span.Content[1].(pandoc.Span)
	assert.Equal(t, "clip.mp4", argSpan.Attr.KV["data-value"])
	assert.Equal(t, "clip.mp4", argSpan.Attr.KV["data-raw"])
}

func TestShortcodeNestedKeywordIsFatal(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Paragraph{Content: pandoc.Inlines{
				pandoc.Shortcode{
					Name: "meta",
					Keyword: map[string]pandoc.ShortcodeArg{
						"inner": pandoc.ShortcodeArgShortcode{Shortcode: pandoc.Shortcode{Name: "var"}},
					},
				},
			}},
		},
	}
	_, errs := desugar.Run(doc)
	require.Len(t, errs, 1)
}

func TestMergeAdjacentStrsCoalesces(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Paragraph{Content: pandoc.Inlines{
				pandoc.Str{Text: "foo"},
				pandoc.Str{Text: "bar"},
				pandoc.Space{},
				pandoc.Str{Text: "baz"},
			}},
		},
	}
	out, errs := desugar.Run(doc)
	require.Empty(t, errs)
	para := out.Blocks[0].(pandoc.Paragraph)
	require.Len(t, para.Content, 3)
	assert.Equal(t, "foobar", para.Content[0].(pandoc.Str).Text)
	assert.Equal(t, "baz", para.Content[2].(pandoc.Str).Text)

	// Idempotence: running desugar again on the already-merged document
	// changes nothing further.
	again, errs2 := desugar.Run(out)
	require.Empty(t, errs2)
	assert.Equal(t, out.Blocks, again.Blocks)
}

func TestHeaderAttributeAttachment(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Header{
				Level: 2,
				Content: pandoc.Inlines{
					pandoc.Str{Text: "Intro"},
					pandoc.AttrInline{Value: pandoc.Attr{ID: "my-id", KV: map[string]string{}}},
				},
			},
		},
	}
	out, errs := desugar.Run(doc)
	require.Empty(t, errs)
	h := out.Blocks[0].(pandoc.Header)
	assert.Equal(t, "my-id", h.Attr.ID)
	assert.Len(t, h.Content, 1)
	assert.Equal(t, "Intro", h.Content[0].(pandoc.Str).Text)
}

func TestHeaderGetsAutoGeneratedIDWhenMissing(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Header{Level: 1, Content: pandoc.Inlines{pandoc.Str{Text: "Overview"}}},
			pandoc.Header{Level: 1, Content: pandoc.Inlines{pandoc.Str{Text: "Overview"}}},
		},
	}
	out, errs := desugar.Run(doc)
	require.Empty(t, errs)
	first := out.Blocks[0].(pandoc.Header)
	second := out.Blocks[1].(pandoc.Header)
	assert.Equal(t, "overview", first.Attr.ID)
	assert.Equal(t, "overview-1", second.Attr.ID)
}

func TestLeftoverAttrIsFatal(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Paragraph{Content: pandoc.Inlines{
				pandoc.Emph{Content: pandoc.Inlines{pandoc.AttrInline{Value: pandoc.Attr{ID: "x"}}}},
			}},
		},
	}
	_, errs := desugar.Run(doc)
	require.Len(t, errs, 1)
}

func TestImageParagraphBecomesFigure(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Paragraph{Content: pandoc.Inlines{
				pandoc.Image{
					Attr:    pandoc.Attr{ID: "fig-1"},
					Content: pandoc.Inlines{pandoc.Str{Text: "a caption"}},
					Target:  pandoc.Target{URL: "a.png"},
				},
			}},
		},
	}
	out, errs := desugar.Run(doc)
	require.Empty(t, errs)
	fig, ok := out.Blocks[0].(pandoc.Figure)
	require.True(t, ok)
	assert.Equal(t, "fig-1", fig.Attr.ID)
}

func TestRawReaderFormatDetection(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.RawBlock{Format: "quarto-internal-leftover", Text: "<python\nprint(1)"},
		},
	}
	out, errs := desugar.Run(doc)
	require.Empty(t, errs)
	rb := out.Blocks[0].(pandoc.RawBlock)
	assert.Equal(t, "pandoc-reader:python", rb.Format)
	assert.Equal(t, "<python\nprint(1)", rb.Text)
}

func TestCitationSuffixAttachment(t *testing.T) {
	doc := pandoc.Document{
		Blocks: pandoc.Blocks{
			pandoc.Paragraph{Content: pandoc.Inlines{
				pandoc.Cite{Citations: []pandoc.Citation{{ID: "smith2020"}}},
				pandoc.Space{},
				pandoc.Span{Content: pandoc.Inlines{pandoc.Str{Text: "p."}, pandoc.Space{}, pandoc.Str{Text: "10"}}},
			}},
		},
	}
	out, errs := desugar.Run(doc)
	require.Empty(t, errs)
	para := out.Blocks[0].(pandoc.Paragraph)
	require.Len(t, para.Content, 1)
	cite := para.Content[0].(pandoc.Cite)
	require.Len(t, cite.Citations, 1)
	assert.Len(t, cite.Citations[0].Suffix, 3)
}
