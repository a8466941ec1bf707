package metadata_test

import (
	"testing"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/metadata"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBetweenDelimiters(t *testing.T) {
	text := "---\ntitle: x\n---\nbody"
	front, ok := metadata.ExtractBetweenDelimiters(text, "---")
	require.True(t, ok)
	assert.Equal(t, "title: x", front)
}

func TestExtractBetweenDelimitersMissing(t *testing.T) {
	_, ok := metadata.ExtractBetweenDelimiters("no front matter here", "---")
	assert.False(t, ok)
}

func TestParseYAMLScalarsAndNesting(t *testing.T) {
	m, err := metadata.ParseYAML("title: Hello\ndraft: true\nauthors:\n  - Jane\n  - Ravi\nnested:\n  key: val\n")
	require.NoError(t, err)
	assert.Equal(t, pandoc.MetaString("Hello"), m["title"])
	assert.Equal(t, pandoc.MetaBool(true), m["draft"])

	authors, ok := m["authors"].(pandoc.MetaList)
	require.True(t, ok)
	require.Len(t, authors, 2)
	assert.Equal(t, pandoc.MetaString("Jane"), authors[0])

	nested, ok := m["nested"].(pandoc.MetaMap)
	require.True(t, ok)
	assert.Equal(t, pandoc.MetaString("val"), nested["key"])
}

func TestParseYAMLNonMappingRootIsEmpty(t *testing.T) {
	m, err := metadata.ParseYAML("- one\n- two\n")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestReparseStringsCollapsesSingleParagraph(t *testing.T) {
	reparse := func(md string) (pandoc.Document, error) {
		return pandoc.Document{
			Meta:   pandoc.MetaMap{},
			Blocks: pandoc.Blocks{pandoc.Paragraph{Content: pandoc.Inlines{pandoc.Str{Text: md}}}},
		}, nil
	}
	out, err := metadata.ReparseStrings("title", pandoc.MetaString("Hello *world*"), pandoc.MetaMap{}, reparse)
	require.NoError(t, err)
	inlines, ok := out.(pandoc.MetaInlines)
	require.True(t, ok)
	assert.Equal(t, "Hello *world*", inlines[0].(pandoc.Str).Text)
}

func TestReparseStringsHoistsNestedMetadata(t *testing.T) {
	reparse := func(md string) (pandoc.Document, error) {
		return pandoc.Document{
			Meta:   pandoc.MetaMap{"hoisted": pandoc.MetaString("yes")},
			Blocks: pandoc.Blocks{pandoc.Paragraph{Content: pandoc.Inlines{pandoc.Str{Text: md}}}},
		}, nil
	}
	outer := pandoc.MetaMap{}
	_, err := metadata.ReparseStrings("desc", pandoc.MetaString("body"), outer, reparse)
	require.NoError(t, err)
	assert.Equal(t, pandoc.MetaString("yes"), outer["hoisted"])
}

func TestReparseStringsPropagatesFailureAsReparseError(t *testing.T) {
	reparse := func(md string) (pandoc.Document, error) {
		return pandoc.Document{}, assertError{}
	}
	_, err := metadata.ReparseStrings("title", pandoc.MetaString("oops"), pandoc.MetaMap{}, reparse)
	require.Error(t, err)
}

type assertError struct{}

func (assertError) Error() string { return "boom" }

func TestParse(t *testing.T) {
	source := "---\ntitle: Hello\n---\nbody text"
	reparse := func(md string) (pandoc.Document, error) {
		return pandoc.Document{
			Meta:   pandoc.MetaMap{},
			Blocks: pandoc.Blocks{pandoc.Paragraph{Content: pandoc.Inlines{pandoc.Str{Text: md}}}},
		}, nil
	}
	meta, err := metadata.Parse(source, "---", reparse)
	require.NoError(t, err)
	inlines, ok := meta["title"].(pandoc.MetaInlines)
	require.True(t, ok)
	assert.Equal(t, "Hello", inlines[0].(pandoc.Str).Text)
}
