package models

// Range is an unresolved reference shape. The set of implementations is
// closed: All, Column, Row, ColumnRange, RowRange, CellRect, CellPos and
// TableRef.
type Range interface {
	// Kind returns the variant name.
	Kind() string
	isRange()
}

// All selects every cell of a sheet ("*").
type All struct{}

// Column selects one whole column.
type Column struct {
	Col Index `json:"col"`
}

// Row selects one whole row.
type Row struct {
	Row Index `json:"row"`
}

// ColumnRange selects whole columns Start through End. Start.Coord <= End.Coord.
type ColumnRange struct {
	Start Index `json:"start"`
	End   Index `json:"end"`
}

// RowRange selects whole rows Start through End. Start.Coord <= End.Coord.
type RowRange struct {
	Start Index `json:"start"`
	End   Index `json:"end"`
}

// CellRect selects the rectangle Min through Max. Each axis of Min is not
// greater than the same axis of Max.
type CellRect struct {
	Min RelPos `json:"min"`
	Max RelPos `json:"max"`
}

// CellPos selects a single cell.
type CellPos struct {
	Pos RelPos `json:"pos"`
}

// TableRef selects part of a named table.
type TableRef struct {
	Selector TableSelector `json:"selector"`
}

func (All) Kind() string         { return "all" }
func (Column) Kind() string      { return "column" }
func (Row) Kind() string         { return "row" }
func (ColumnRange) Kind() string { return "column_range" }
func (RowRange) Kind() string    { return "row_range" }
func (CellRect) Kind() string    { return "rect" }
func (CellPos) Kind() string     { return "pos" }
func (TableRef) Kind() string    { return "table" }

func (All) isRange()         {}
func (Column) isRange()      {}
func (Row) isRange()         {}
func (ColumnRange) isRange() {}
func (RowRange) isRange()    {}
func (CellRect) isRange()    {}
func (CellPos) isRange()     {}
func (TableRef) isRange()    {}

// NewColumnRange orders a and b by coordinate. Each endpoint keeps the flag
// of the input that supplied its coordinate.
func NewColumnRange(a, b Index) ColumnRange {
	if a.Coord > b.Coord {
		a, b = b, a
	}
	return ColumnRange{Start: a, End: b}
}

// NewRowRange orders a and b by coordinate.
func NewRowRange(a, b Index) RowRange {
	if a.Coord > b.Coord {
		a, b = b, a
	}
	return RowRange{Start: a, End: b}
}

// NewCellRect orders a and b per axis. Each surviving coordinate keeps the
// flag of the input that supplied it.
func NewCellRect(a, b RelPos) CellRect {
	if a.X.Coord > b.X.Coord {
		a.X, b.X = b.X, a.X
	}
	if a.Y.Coord > b.Y.Coord {
		a.Y, b.Y = b.Y, a.Y
	}
	return CellRect{Min: a, Max: b}
}
