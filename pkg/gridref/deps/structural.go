package deps

import (
	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// InsertColumns shifts edges on sheet for n columns inserted before col.
func (m *Map) InsertColumns(sheet models.SheetID, col, n int) {
	n, ok := editSize(col, n)
	if !ok {
		return
	}
	ax := insertAxis(col, n)
	m.restructure(sheet, columnAxis(ax))
}

// DeleteColumns shifts edges on sheet for the n columns starting at col being
// deleted. Edges whose source cell is deleted are dropped, as are targets
// lying wholly inside the deleted columns; other targets shrink.
func (m *Map) DeleteColumns(sheet models.SheetID, col, n int) {
	n, ok := editSize(col, n)
	if !ok {
		return
	}
	ax := deleteAxis(col, n)
	m.restructure(sheet, columnAxis(ax))
}

// InsertRows shifts edges on sheet for n rows inserted before row.
func (m *Map) InsertRows(sheet models.SheetID, row, n int) {
	n, ok := editSize(row, n)
	if !ok {
		return
	}
	ax := insertAxis(row, n)
	m.restructure(sheet, rowAxis(ax))
}

// DeleteRows shifts edges on sheet for the n rows starting at row being deleted.
func (m *Map) DeleteRows(sheet models.SheetID, row, n int) {
	n, ok := editSize(row, n)
	if !ok {
		return
	}
	ax := deleteAxis(row, n)
	m.restructure(sheet, rowAxis(ax))
}

// editSize clamps n so that at+n stays within the grid. It reports false
// when the edit is empty or starts outside the grid.
func editSize(at, n int) (int, bool) {
	if n <= 0 || at < 1 || at >= models.Unbounded {
		return 0, false
	}
	return min(n, models.Unbounded-at), true
}

// axis maps coordinates along one dimension across a structural edit.
type axis struct {
	// point maps a single coordinate, false when it was deleted.
	point func(v int) (int, bool)
	// span maps an inclusive interval, false when nothing of it survives.
	span func(lo, hi int) (int, int, bool)
}

// layout applies an axis to positions and rectangles.
type layout struct {
	pos  func(models.Pos) (models.Pos, bool)
	rect func(models.Rect) (models.Rect, bool)
}

func insertAxis(at, n int) axis {
	move := func(v int) int {
		if v < at || v >= models.Unbounded {
			return v
		}
		if n >= models.Unbounded-1-v {
			return models.Unbounded - 1
		}
		return v + n
	}
	return axis{
		point: func(v int) (int, bool) { return move(v), true },
		span: func(lo, hi int) (int, int, bool) {
			if lo == 1 && hi >= models.Unbounded {
				// Whole rows or columns stay whole.
				return lo, hi, true
			}
			return move(lo), move(hi), true
		},
	}
}

func deleteAxis(at, n int) axis {
	end := at + n // first coordinate after the deleted band
	return axis{
		point: func(v int) (int, bool) {
			switch {
			case v < at || v >= models.Unbounded:
				return v, true
			case v < end:
				return 0, false
			default:
				return v - n, true
			}
		},
		span: func(lo, hi int) (int, int, bool) {
			switch {
			case lo >= end:
				lo -= n
			case lo >= at:
				lo = at
			}
			switch {
			case hi >= models.Unbounded:
			case hi >= end:
				hi -= n
			case hi >= at:
				hi = at - 1
			}
			return lo, hi, lo <= hi
		},
	}
}

func columnAxis(ax axis) layout {
	return layout{
		pos: func(p models.Pos) (models.Pos, bool) {
			x, ok := ax.point(p.X)
			return models.Pos{X: x, Y: p.Y}, ok
		},
		rect: func(r models.Rect) (models.Rect, bool) {
			lo, hi, ok := ax.span(r.Min.X, r.Max.X)
			return models.Rect{
				Min: models.Pos{X: lo, Y: r.Min.Y},
				Max: models.Pos{X: hi, Y: r.Max.Y},
			}, ok
		},
	}
}

func rowAxis(ax axis) layout {
	return layout{
		pos: func(p models.Pos) (models.Pos, bool) {
			y, ok := ax.point(p.Y)
			return models.Pos{X: p.X, Y: y}, ok
		},
		rect: func(r models.Rect) (models.Rect, bool) {
			lo, hi, ok := ax.span(r.Min.Y, r.Max.Y)
			return models.Rect{
				Min: models.Pos{X: r.Min.X, Y: lo},
				Max: models.Pos{X: r.Max.X, Y: hi},
			}, ok
		},
	}
}

// restructure removes every edge touching sheet, maps it through l, and
// inserts the survivors. The new edge set is computed in full before the map
// is modified.
func (m *Map) restructure(sheet models.SheetID, l layout) {
	affected := make(map[Edge]struct{})
	for source, targets := range m.bySource {
		for target := range targets {
			if source.Sheet == sheet || target.Sheet == sheet {
				affected[Edge{Source: source, Target: target}] = struct{}{}
			}
		}
	}
	if len(affected) == 0 {
		return
	}

	moved := make([]Edge, 0, len(affected))
	for e := range affected {
		if e.Source.Sheet == sheet {
			p, ok := l.pos(e.Source.Pos)
			if !ok {
				continue
			}
			e.Source.Pos = p
		}
		if e.Target.Sheet == sheet {
			r, ok := l.rect(e.Target.Rect)
			if !ok {
				continue
			}
			e.Target.Rect = r
		}
		moved = append(moved, e)
	}

	for e := range affected {
		m.removeEdge(e)
	}
	for _, e := range moved {
		m.insert(e.Source, e.Target)
	}
}
