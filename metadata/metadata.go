// Package metadata implements the metadata extractor (C8): pulling a
// document's YAML front matter out of its literal text, folding it into
// Metadata, and recursively re-parsing every string-valued entry as
// markdown so metadata can itself carry Quarto shortcodes/spans.
package metadata

import (
	"fmt"
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qerr"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
	yaml "go.yaml.in/yaml/v3"
)

// ExtractBetweenDelimiters splits text on a delimiter line (e.g. "---"),
// returning the content of the first section between two delimiter
// occurrences. Mirrors the original's extract_between_delimiters, which
// requires at least three "---"-split parts (leading empty, front matter,
// rest) and returns the trimmed middle one.
func ExtractBetweenDelimiters(text, delimiter string) (string, bool) {
	parts := strings.Split(text, delimiter)
	if len(parts) < 3 {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// ParseYAML folds a YAML document's text into a Metadata map. A document
// whose root isn't a mapping (e.g. bare scalar or sequence front matter)
// returns an empty Metadata, matching the original's "if the root frame
// isn't a Map, there is no metadata" behavior.
func ParseYAML(yamlText string) (pandoc.Metadata, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(yamlText), &root); err != nil {
		return pandoc.MetaMap{}, fmt.Errorf("metadata: parsing yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return pandoc.MetaMap{}, nil
	}
	value := convertNode(root.Content[0])
	if m, ok := value.(pandoc.MetaMap); ok {
		return m, nil
	}
	return pandoc.MetaMap{}, nil
}

// convertNode folds one yaml.Node into a MetaValue. This plays the role the
// original's ContextFrame push/pop stack plays over a streamed sequence of
// parser Events: go.yaml.in/yaml/v3 hands back an already-built node tree
// rather than a flat event stream, so the same Map/List/Scalar frame
// structure is walked here as a straightforward recursive descent instead
// of an explicit stack of frames.
func convertNode(n *yaml.Node) pandoc.MetaValue {
	switch n.Kind {
	case yaml.MappingNode:
		m := pandoc.MetaMap{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			m[key] = convertNode(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		list := make(pandoc.MetaList, 0, len(n.Content))
		for _, item := range n.Content {
			list = append(list, convertNode(item))
		}
		return list
	case yaml.ScalarNode:
		return parseScalar(n.Value)
	case yaml.AliasNode:
		if n.Alias != nil {
			return convertNode(n.Alias)
		}
		return pandoc.MetaString("")
	default:
		return pandoc.MetaString("")
	}
}

func parseScalar(s string) pandoc.MetaValue {
	switch s {
	case "true":
		return pandoc.MetaBool(true)
	case "false":
		return pandoc.MetaBool(false)
	default:
		return pandoc.MetaString(s)
	}
}

// ReparseFunc re-parses a markdown string into a document, the same
// lowering+desugar pipeline a top-level qmd.Read call uses. It is injected
// rather than imported directly so this package doesn't depend on qmd,
// which itself depends on metadata.
type ReparseFunc func(markdown string) (pandoc.Document, error)

// ReparseStrings walks meta, recursively re-parsing every MetaString value
// as markdown via reparse and hoisting any metadata that nested parse
// itself recovers into outerMetadata (a later key overwrites an earlier
// one with the same name). A single-Paragraph re-parse result collapses to
// MetaInlines; anything else becomes MetaBlocks. A re-parse failure is
// fatal: front matter that can't be read back as markdown can't be relied
// on for anything downstream.
func ReparseStrings(key string, meta pandoc.MetaValue, outerMetadata pandoc.MetaMap, reparse ReparseFunc) (pandoc.MetaValue, error) {
	switch v := meta.(type) {
	case pandoc.MetaString:
		doc, err := reparse(string(v))
		if err != nil {
			return nil, &qerr.ReparseError{Key: key, Message: err.Error()}
		}
		for k, nested := range doc.Meta {
			outerMetadata[k] = nested
		}
		if len(doc.Blocks) == 1 {
			if p, ok := doc.Blocks[0].(pandoc.Paragraph); ok {
				return pandoc.MetaInlines(p.Content), nil
			}
		}
		return pandoc.MetaBlocks(doc.Blocks), nil
	case pandoc.MetaList:
		result := make(pandoc.MetaList, len(v))
		for i, item := range v {
			converted, err := ReparseStrings(fmt.Sprintf("%s[%d]", key, i), item, outerMetadata, reparse)
			if err != nil {
				return nil, err
			}
			result[i] = converted
		}
		return result, nil
	case pandoc.MetaMap:
		result := pandoc.MetaMap{}
		for k, val := range v {
			converted, err := ReparseStrings(key+"."+k, val, outerMetadata, reparse)
			if err != nil {
				return nil, err
			}
			result[k] = converted
		}
		return result, nil
	default:
		return meta, nil
	}
}

// Parse extracts and fully resolves a document's front matter: it strips
// the delimited YAML block, folds it into Metadata, then recursively
// re-parses every string value as markdown via reparse.
func Parse(source string, delimiter string, reparse ReparseFunc) (pandoc.Metadata, error) {
	yamlText, ok := ExtractBetweenDelimiters(source, delimiter)
	if !ok {
		return pandoc.MetaMap{}, nil
	}
	raw, err := ParseYAML(yamlText)
	if err != nil {
		return nil, err
	}

	result := pandoc.MetaMap{}
	for k, v := range raw {
		converted, err := ReparseStrings(k, v, result, reparse)
		if err != nil {
			return nil, err
		}
		result[k] = converted
	}
	return result, nil
}
