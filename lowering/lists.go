package lowering

import (
	"strconv"
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/location"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

type listItem struct {
	Content pandoc.Blocks
	Marker  *listMarker
	Range   location.Range
}

type listMarker struct {
	Ordered bool
	Start   int
	Delim   pandoc.ListNumberDelim
}

var bulletMarkerKinds = map[string]bool{
	"list_marker_minus": true,
	"list_marker_star":  true,
	"list_marker_plus":  true,
}

var orderedMarkerKinds = map[string]pandoc.ListNumberDelim{
	"list_marker_dot":         pandoc.Period,
	"list_marker_parenthesis": pandoc.OneParen,
}

func init() {
	register("list_item", listItemHandler)
	register("list", listHandler)
	for kind := range bulletMarkerKinds {
		register(kind, func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
			return listMarker{Ordered: false}, nil
		})
	}
	for kind, delim := range orderedMarkerKinds {
		delim := delim
		register(kind, func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
			return listMarker{Ordered: true, Start: parseListMarkerNumber(n.Content(source)), Delim: delim}, nil
		})
	}
}

// parseListMarkerNumber recovers the start number from a list_marker_dot
// or list_marker_parenthesis node's raw text ("3." or "3)"). Unparseable
// text falls back to 1 rather than failing the whole list.
func parseListMarkerNumber(text string) int {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ".")
	text = strings.TrimSuffix(text, ")")
	n, err := strconv.Atoi(text)
	if err != nil {
		return 1
	}
	return n
}

// listItemHandler separates a list item's marker child (if any) from its
// block children, so a bare listMarker never reaches collectBlocks
// (which only accepts Block/Blocks children).
func listItemHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var blockChildren []cst.ChildResult
	var marker *listMarker
	for _, c := range children {
		if m, ok := c.Value.(listMarker); ok {
			mCopy := m
			marker = &mCopy
			continue
		}
		blockChildren = append(blockChildren, c)
	}
	blocks, _ := collectBlocks(blockChildren)
	return listItem{Content: blocks, Marker: marker, Range: nodeRange(n)}, nil
}

// listHandler assembles items into a BulletList or OrderedList. Whether
// the list is ordered, and its starting number/delimiter, comes from a
// marker found directly among the list's own children if present,
// otherwise from the first item carrying one.
func listHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var items []listItem
	var marker *listMarker
	for _, c := range children {
		switch v := c.Value.(type) {
		case listItem:
			items = append(items, v)
			if marker == nil && v.Marker != nil {
				marker = v.Marker
			}
		case listMarker:
			marker = &v
		}
	}

	tight := isTightList(items)
	contents := make([]pandoc.Blocks, len(items))
	for i, item := range items {
		contents[i] = tightenItem(item.Content, tight)
	}

	if marker != nil && marker.Ordered {
		return pandoc.OrderedList{
			Attr:    pandoc.ListAttr{Start: marker.Start, Style: pandoc.Decimal, Delim: marker.Delim},
			Content: contents,
			Range:   nodeRange(n),
		}, nil
	}
	return pandoc.BulletList{Content: contents, Range: nodeRange(n)}, nil
}

// isTightList implements the tightness rule: a list is loose if any item
// holds more than one Paragraph, or if a single-Paragraph item's range
// doesn't end on the same source line the next item starts on.
func isTightList(items []listItem) bool {
	for i, item := range items {
		paraCount := 0
		for _, b := range item.Content {
			if _, ok := b.(pandoc.Paragraph); ok {
				paraCount++
			}
		}
		if paraCount > 1 {
			return false
		}
		if paraCount == 1 && i+1 < len(items) {
			if item.Range.End.Row != items[i+1].Range.Start.Row {
				return false
			}
		}
	}
	return true
}

// tightenItem rewrites a single-Paragraph item's lone Paragraph into a
// Plain once the whole list has been determined tight.
func tightenItem(content pandoc.Blocks, tight bool) pandoc.Blocks {
	if !tight || len(content) != 1 {
		return content
	}
	para, ok := content[0].(pandoc.Paragraph)
	if !ok {
		return content
	}
	return pandoc.Blocks{pandoc.Plain{Content: para.Content, Range: para.Range}}
}
