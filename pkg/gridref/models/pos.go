// Package models defines the value types shared by the reference parser,
// geometry, translation and dependency tracking packages.
package models

import "math"

// Unbounded is the coordinate used for the open end of whole rows and columns.
// It is a finite integer so that bounding-box arithmetic stays well-defined.
const Unbounded = math.MaxInt32

// Index is a 1-based column or row coordinate tagged relative or absolute.
type Index struct {
	// Coord is the 1-based coordinate (Unbounded for an open end).
	Coord int `json:"coord"`
	// Absolute is set when the coordinate was written with a leading `$`.
	Absolute bool `json:"absolute,omitempty"`
}

// Rel returns a relative index.
func Rel(coord int) Index {
	return Index{Coord: coord}
}

// Abs returns an absolute index.
func Abs(coord int) Index {
	return Index{Coord: coord, Absolute: true}
}

// IsUnbounded reports whether the index is the open end of a row or column.
func (i Index) IsUnbounded() bool {
	return i.Coord >= Unbounded
}

// Pos is a resolved grid coordinate.
type Pos struct {
	// X is the 1-based column.
	X int `json:"x"`
	// Y is the 1-based row.
	Y int `json:"y"`
}

// RelPos is a cell coordinate whose axes independently carry the
// relative/absolute flag.
type RelPos struct {
	// X is the column index.
	X Index `json:"x"`
	// Y is the row index.
	Y Index `json:"y"`
}

// NewRelPos returns a RelPos with both axes relative.
func NewRelPos(x, y int) RelPos {
	return RelPos{X: Rel(x), Y: Rel(y)}
}

// Pos drops the relative/absolute flags.
func (p RelPos) Pos() Pos {
	return Pos{X: p.X.Coord, Y: p.Y.Coord}
}

// Rect is an inclusive, axis-aligned region. Min is never greater than Max
// on either axis when built through NewRect.
type Rect struct {
	// Min is the top-left corner.
	Min Pos `json:"min"`
	// Max is the bottom-right corner.
	Max Pos `json:"max"`
}

// NewRect returns the rectangle spanning a and b, swapping components as
// needed so that Min <= Max.
func NewRect(a, b Pos) Rect {
	if a.X > b.X {
		a.X, b.X = b.X, a.X
	}
	if a.Y > b.Y {
		a.Y, b.Y = b.Y, a.Y
	}
	return Rect{Min: a, Max: b}
}

// RectFromPos returns the single-cell rectangle at p.
func RectFromPos(p Pos) Rect {
	return Rect{Min: p, Max: p}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Pos) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Width returns the number of columns covered by r.
func (r Rect) Width() int {
	return r.Max.X - r.Min.X + 1
}

// Height returns the number of rows covered by r.
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y + 1
}
