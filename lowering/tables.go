package lowering

import (
	"strings"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qerr"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

type tableRow struct {
	Cells []pandoc.Cell
}

type tableDelimiterRow struct {
	Alignments []pandoc.Alignment
}

func init() {
	register("pipe_table_cell", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		content, _ := collectInlines(children)
		return pandoc.Cell{Attr: pandoc.EmptyAttr(), RowSpan: 1, ColSpan: 1, Content: pandoc.Blocks{pandoc.Plain{Content: content}}}, nil
	})
	register("pipe_table_header", pipeTableRowHandler)
	register("pipe_table_row", pipeTableRowHandler)
	register("pipe_table_delimiter_row", pipeTableDelimiterRowHandler)
	register("pipe_table_delimiter_cell", func(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
		return parseAlignment(n.Content(source)), nil
	})
	register("pipe_table", pipeTableHandler)
}

func pipeTableRowHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var cells []pandoc.Cell
	for _, c := range children {
		if cell, ok := c.Value.(pandoc.Cell); ok {
			cells = append(cells, cell)
		}
	}
	return tableRow{Cells: cells}, nil
}

func pipeTableDelimiterRowHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var alignments []pandoc.Alignment
	for _, c := range children {
		if a, ok := c.Value.(pandoc.Alignment); ok {
			alignments = append(alignments, a)
		}
	}
	return tableDelimiterRow{Alignments: alignments}, nil
}

func parseAlignment(text string) pandoc.Alignment {
	text = strings.TrimSpace(text)
	left := strings.HasPrefix(text, ":")
	right := strings.HasSuffix(text, ":")
	switch {
	case left && right:
		return pandoc.AlignCenter
	case left:
		return pandoc.AlignLeft
	case right:
		return pandoc.AlignRight
	default:
		return pandoc.AlignDefault
	}
}

// pipeTableHandler assembles a Table from its header, delimiter and data
// row children. A pipe_table with no header row is an unrecoverable shape:
// Pandoc's table model requires exactly one header row, so this aborts
// lowering with a ShapeError instead of inventing one.
func pipeTableHandler(n cst.Node, children []cst.ChildResult, source []byte) (any, error) {
	var header *tableRow
	var delim tableDelimiterRow
	var bodyRows []tableRow

	for _, c := range children {
		switch v := c.Value.(type) {
		case tableRow:
			if c.Kind == "pipe_table_header" {
				h := v
				header = &h
			} else {
				bodyRows = append(bodyRows, v)
			}
		case tableDelimiterRow:
			delim = v
		}
	}

	if header == nil {
		return nil, &qerr.ShapeError{
			Message: "pipe_table has no header row",
			Range:   nodeRange(n),
		}
	}

	colSpecs := make([]pandoc.ColSpec, len(header.Cells))
	for i := range header.Cells {
		align := pandoc.AlignDefault
		if i < len(delim.Alignments) {
			align = delim.Alignments[i]
		}
		colSpecs[i] = pandoc.ColSpec{Alignment: align, Width: pandoc.ColWidth{Default: true}}
	}

	body := make([]pandoc.Row, len(bodyRows))
	for i, r := range bodyRows {
		body[i] = pandoc.Row{Cells: r.Cells}
	}

	return pandoc.Table{
		Attr:     pandoc.EmptyAttr(),
		Caption:  pandoc.Caption{},
		ColSpecs: colSpecs,
		Head:     pandoc.TableHead{Rows: []pandoc.Row{{Cells: header.Cells}}},
		Bodies: []pandoc.TableBody{
			{Body: body},
		},
		Foot:  pandoc.TableFoot{},
		Range: nodeRange(n),
	}, nil
}
