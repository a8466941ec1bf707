package pandoc

// Alignment is a table column's horizontal alignment.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

// ColWidth is either the writer-chosen default width or an explicit
// fraction of the table's total width.
type ColWidth struct {
	Default bool
	Width   float64
}

// ColSpec pairs a column's alignment with its width.
type ColSpec struct {
	Alignment Alignment
	Width     ColWidth
}

// Cell is one table cell spanning rowspan x colspan grid positions.
type Cell struct {
	Attr      Attr
	Alignment Alignment
	RowSpan   int
	ColSpan   int
	Content   Blocks
}

// Row is a sequence of cells.
type Row struct {
	Attr  Attr
	Cells []Cell
}

// TableHead is the table's single header row group.
type TableHead struct {
	Attr Attr
	Rows []Row
}

// TableBody is one body row group: the first RowHeadColumns columns of each
// row are row-header stubs, Head holds the group's intermediate head rows
// and Body its data rows.
type TableBody struct {
	Attr           Attr
	RowHeadColumns int
	Head           []Row
	Body           []Row
}

// TableFoot is the table's single optional footer row group.
type TableFoot struct {
	Attr Attr
	Rows []Row
}

// Caption is a table or figure's short (inline) and/or long (block) caption.
type Caption struct {
	Short *Inlines
	Long  *Blocks
}
