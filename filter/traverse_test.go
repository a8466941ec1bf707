package filter_test

import (
	"testing"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/filter"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
	"github.com/stretchr/testify/assert"
)

func TestFilterInlinesRewritesShortcodeWithoutReprocessing(t *testing.T) {
	sc := pandoc.Shortcode{Name: "video"}
	f := filter.New().WithShortcode(func(s pandoc.Shortcode) filter.InlineOutcome {
		return filter.Replace(false, pandoc.Span{Attr: pandoc.Attr{Classes: []string{"quarto-shortcode__" + s.Name}}})
	})

	out := filter.FilterInlines(pandoc.Inlines{sc}, f)
	assert.Len(t, out, 1)
	span, ok := out[0].(pandoc.Span)
	assert.True(t, ok)
	assert.Equal(t, []string{"quarto-shortcode__video"}, span.Attr.Classes)
}

func TestFilterInlinesRecursesIntoEmphContent(t *testing.T) {
	inlines := pandoc.Inlines{
		pandoc.Emph{Content: pandoc.Inlines{pandoc.Shortcode{Name: "x"}}},
	}
	f := filter.New().WithShortcode(func(s pandoc.Shortcode) filter.InlineOutcome {
		return filter.Replace(false, pandoc.Str{Text: "replaced"})
	})

	out := filter.FilterInlines(inlines, f)
	emph := out[0].(pandoc.Emph)
	assert.Equal(t, pandoc.Str{Text: "replaced"}, emph.Content[0])
}

func TestFilterInlinesSequenceCallbackRunsAfterElementRewrites(t *testing.T) {
	inlines := pandoc.Inlines{pandoc.Str{Text: "a"}, pandoc.Str{Text: "b"}}
	f := filter.New().WithInlines(func(in pandoc.Inlines) pandoc.Inlines {
		merged := ""
		for _, i := range in {
			merged += i.(pandoc.Str).Text
		}
		return pandoc.Inlines{pandoc.Str{Text: merged}}
	})

	out := filter.FilterInlines(inlines, f)
	assert.Equal(t, pandoc.Inlines{pandoc.Str{Text: "ab"}}, out)
}

func TestFilterBlocksParagraphToFigure(t *testing.T) {
	para := pandoc.Paragraph{Content: pandoc.Inlines{pandoc.Image{Content: pandoc.Inlines{pandoc.Str{Text: "cap"}}}}}
	f := filter.New().WithParagraph(func(p pandoc.Paragraph) filter.BlockOutcome {
		if len(p.Content) != 1 {
			return filter.UnchangedBlock(p)
		}
		if _, ok := p.Content[0].(pandoc.Image); !ok {
			return filter.UnchangedBlock(p)
		}
		return filter.ReplaceBlock(false, pandoc.Figure{})
	})

	out := filter.FilterBlocks(pandoc.Blocks{para}, f)
	assert.Len(t, out, 1)
	_, ok := out[0].(pandoc.Figure)
	assert.True(t, ok)
}

func TestFilterInlinesUnchangedKeepsRecursion(t *testing.T) {
	sup := pandoc.Superscript{Content: pandoc.Inlines{pandoc.Shortcode{Name: "x"}}}
	f := filter.New().
		WithSuperscript(func(s pandoc.Superscript) filter.InlineOutcome {
			return filter.Unchanged(s)
		}).
		WithShortcode(func(s pandoc.Shortcode) filter.InlineOutcome {
			return filter.Replace(false, pandoc.Str{Text: "done"})
		})

	out := filter.FilterInlines(pandoc.Inlines{sup}, f)
	result := out[0].(pandoc.Superscript)
	assert.Equal(t, pandoc.Str{Text: "done"}, result.Content[0])
}
