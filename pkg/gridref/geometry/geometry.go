// Package geometry answers intersection and containment queries between
// unresolved ranges and resolved grid regions.
package geometry

import (
	"fmt"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// TableResolver resolves a structured reference to the region it covers.
type TableResolver interface {
	ResolveTable(sel models.TableSelector) (models.SheetRect, bool)
}

// Intersects reports whether r covers at least one cell of rect. Table
// references never intersect; use IntersectsResolved for them.
func Intersects(r models.Range, rect models.Rect) bool {
	switch v := r.(type) {
	case models.All:
		return true
	case models.Column:
		return between(v.Col.Coord, rect.Min.X, rect.Max.X)
	case models.Row:
		return between(v.Row.Coord, rect.Min.Y, rect.Max.Y)
	case models.ColumnRange:
		return overlaps(v.Start.Coord, v.End.Coord, rect.Min.X, rect.Max.X)
	case models.RowRange:
		return overlaps(v.Start.Coord, v.End.Coord, rect.Min.Y, rect.Max.Y)
	case models.CellRect:
		return cellRect(v).Intersects(rect)
	case models.CellPos:
		return rect.Contains(v.Pos.Pos())
	case models.TableRef:
		return false
	default:
		panic(fmt.Sprintf("geometry: unhandled range %T", r))
	}
}

// Contains reports whether r covers pos. Table references contain nothing;
// use ContainsResolved for them.
func Contains(r models.Range, pos models.Pos) bool {
	switch v := r.(type) {
	case models.All:
		return true
	case models.Column:
		return pos.X == v.Col.Coord
	case models.Row:
		return pos.Y == v.Row.Coord
	case models.ColumnRange:
		return between(pos.X, v.Start.Coord, v.End.Coord)
	case models.RowRange:
		return between(pos.Y, v.Start.Coord, v.End.Coord)
	case models.CellRect:
		return cellRect(v).Contains(pos)
	case models.CellPos:
		return v.Pos.Pos() == pos
	case models.TableRef:
		return false
	default:
		panic(fmt.Sprintf("geometry: unhandled range %T", r))
	}
}

// IntersectsResolved is Intersects with table references resolved through
// tables. The sheet a table lives on is not compared.
func IntersectsResolved(r models.Range, rect models.Rect, tables TableResolver) bool {
	if _, ok := r.(models.TableRef); !ok {
		return Intersects(r, rect)
	}
	b, ok := Bounds(r, tables)
	return ok && b.Intersects(rect)
}

// ContainsResolved is Contains with table references resolved through
// tables. The sheet a table lives on is not compared.
func ContainsResolved(r models.Range, pos models.Pos, tables TableResolver) bool {
	if _, ok := r.(models.TableRef); !ok {
		return Contains(r, pos)
	}
	b, ok := Bounds(r, tables)
	return ok && b.Contains(pos)
}

// Bounds returns the region r covers. Whole rows and columns extend to
// models.Unbounded. Table references are resolved through tables, which may
// be nil; an unresolvable table yields false.
func Bounds(r models.Range, tables TableResolver) (models.Rect, bool) {
	switch v := r.(type) {
	case models.All:
		return models.Rect{
			Min: models.Pos{X: 1, Y: 1},
			Max: models.Pos{X: models.Unbounded, Y: models.Unbounded},
		}, true
	case models.Column:
		return columns(v.Col.Coord, v.Col.Coord), true
	case models.Row:
		return rows(v.Row.Coord, v.Row.Coord), true
	case models.ColumnRange:
		return columns(v.Start.Coord, v.End.Coord), true
	case models.RowRange:
		return rows(v.Start.Coord, v.End.Coord), true
	case models.CellRect:
		return cellRect(v), true
	case models.CellPos:
		return models.RectFromPos(v.Pos.Pos()), true
	case models.TableRef:
		if tables == nil {
			return models.Rect{}, false
		}
		sr, ok := tables.ResolveTable(v.Selector)
		return sr.Rect, ok
	default:
		panic(fmt.Sprintf("geometry: unhandled range %T", r))
	}
}

// SheetBounds resolves ref to a region on its sheet. A table reference
// resolves to the sheet that owns the table.
func SheetBounds(ref models.SheetReference, tables TableResolver) (models.SheetRect, bool) {
	if t, ok := ref.Range.(models.TableRef); ok {
		if tables == nil {
			return models.SheetRect{}, false
		}
		return tables.ResolveTable(t.Selector)
	}
	rect, ok := Bounds(ref.Range, tables)
	if !ok {
		return models.SheetRect{}, false
	}
	return models.SheetRect{Sheet: ref.Sheet, Rect: rect}, true
}

// SelectionContains reports whether pos is covered by an included part of
// sel and by no excluded part. Table parts cover nothing.
func SelectionContains(sel models.Selection, pos models.Pos) bool {
	return SelectionContainsResolved(sel, pos, nil)
}

// SelectionContainsResolved is SelectionContains with table parts resolved
// through tables. A table on another sheet than sel covers nothing.
func SelectionContainsResolved(sel models.Selection, pos models.Pos, tables TableResolver) bool {
	included := false
	for _, part := range sel.Parts {
		if !partContains(sel.Sheet, part.Range, pos, tables) {
			continue
		}
		if part.Exclude {
			return false
		}
		included = true
	}
	return included
}

func partContains(sheet models.SheetID, r models.Range, pos models.Pos, tables TableResolver) bool {
	t, ok := r.(models.TableRef)
	if !ok {
		return Contains(r, pos)
	}
	if tables == nil {
		return false
	}
	region, ok := tables.ResolveTable(t.Selector)
	return ok && region.Sheet == sheet && region.Rect.Contains(pos)
}

func cellRect(v models.CellRect) models.Rect {
	return models.NewRect(v.Min.Pos(), v.Max.Pos())
}

func columns(start, end int) models.Rect {
	return models.NewRect(models.Pos{X: start, Y: 1}, models.Pos{X: end, Y: models.Unbounded})
}

func rows(start, end int) models.Rect {
	return models.NewRect(models.Pos{X: 1, Y: start}, models.Pos{X: models.Unbounded, Y: end})
}

func between(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

func overlaps(aLo, aHi, bLo, bHi int) bool {
	return aLo <= bHi && bLo <= aHi
}
