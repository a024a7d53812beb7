// Package deps records which cells depend on which regions and answers the
// reverse question of which cells a change to a region affects.
package deps

import (
	"cmp"
	"iter"
	"slices"

	"github.com/tidwall/rtree"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// Edge records that the value at Source was computed from Target.
type Edge struct {
	Source models.SheetPos  `json:"source"`
	Target models.SheetRect `json:"target"`
}

// Map is a set of dependency edges held in two indices that always agree:
// an R-tree per target sheet keyed by target region, and a map keyed by
// source position. Map is not safe for concurrent use; one owner serializes
// every call.
type Map struct {
	regions  map[models.SheetID]*rtree.RTreeG[models.SheetPos]
	bySource map[models.SheetPos]map[models.SheetRect]struct{}
	size     int
}

// New creates an empty Map.
func New() *Map {
	return &Map{
		regions:  make(map[models.SheetID]*rtree.RTreeG[models.SheetPos]),
		bySource: make(map[models.SheetPos]map[models.SheetRect]struct{}),
	}
}

// Insert adds the edge source -> (sheet, rect). Inserting an existing edge
// is a no-op.
func (m *Map) Insert(source models.SheetPos, sheet models.SheetID, rect models.Rect) {
	m.insert(source, models.SheetRect{Sheet: sheet, Rect: rect})
}

// SetRegionsForPos replaces every outgoing edge of source with regions. It is
// the mutation recalculation uses once a cell's reference set is known.
func (m *Map) SetRegionsForPos(source models.SheetPos, regions []models.SheetRect) {
	m.RemovePos(source)
	for _, r := range regions {
		m.insert(source, r)
	}
}

// RemovePos deletes every outgoing edge of source.
func (m *Map) RemovePos(source models.SheetPos) {
	for target := range m.bySource[source] {
		m.deleteFromTree(source, target)
	}
	delete(m.bySource, source)
}

// RemoveSheet deletes every edge whose source or target is on sheet. Edges
// with both ends on sheet are removed by the first pass, so the second pass
// only sees edges whose source is elsewhere.
func (m *Map) RemoveSheet(sheet models.SheetID) {
	for source := range m.bySource {
		if source.Sheet == sheet {
			m.RemovePos(source)
		}
	}

	tree := m.regions[sheet]
	if tree == nil {
		return
	}
	tree.Scan(func(min, max [2]float64, source models.SheetPos) bool {
		target := models.SheetRect{Sheet: sheet, Rect: rectFromBox(min, max)}
		targets := m.bySource[source]
		if _, ok := targets[target]; ok {
			delete(targets, target)
			m.size--
			if len(targets) == 0 {
				delete(m.bySource, source)
			}
		}
		return true
	})
	delete(m.regions, sheet)
}

// DependentsOf returns the distinct source positions with an edge whose
// target intersects (sheet, rect), ordered by sheet, row, then column.
func (m *Map) DependentsOf(sheet models.SheetID, rect models.Rect) []models.SheetPos {
	tree := m.regions[sheet]
	if tree == nil {
		return nil
	}
	seen := make(map[models.SheetPos]struct{})
	min, max := box(rect)
	tree.Search(min, max, func(_, _ [2]float64, source models.SheetPos) bool {
		seen[source] = struct{}{}
		return true
	})
	out := make([]models.SheetPos, 0, len(seen))
	for source := range seen {
		out = append(out, source)
	}
	slices.SortFunc(out, comparePos)
	return out
}

// RegionsForPos returns the targets of source's outgoing edges.
func (m *Map) RegionsForPos(source models.SheetPos) []models.SheetRect {
	targets := m.bySource[source]
	out := make([]models.SheetRect, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	slices.SortFunc(out, compareRect)
	return out
}

// Len returns the number of edges.
func (m *Map) Len() int {
	return m.size
}

// Edges iterates every edge in no particular order. The map must not be
// modified during iteration.
func (m *Map) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for source, targets := range m.bySource {
			for target := range targets {
				if !yield(Edge{Source: source, Target: target}) {
					return
				}
			}
		}
	}
}

// Clear removes every edge.
func (m *Map) Clear() {
	m.regions = make(map[models.SheetID]*rtree.RTreeG[models.SheetPos])
	m.bySource = make(map[models.SheetPos]map[models.SheetRect]struct{})
	m.size = 0
}

func (m *Map) insert(source models.SheetPos, target models.SheetRect) {
	targets := m.bySource[source]
	if targets == nil {
		targets = make(map[models.SheetRect]struct{})
		m.bySource[source] = targets
	}
	if _, ok := targets[target]; ok {
		return
	}
	targets[target] = struct{}{}

	tree := m.regions[target.Sheet]
	if tree == nil {
		tree = &rtree.RTreeG[models.SheetPos]{}
		m.regions[target.Sheet] = tree
	}
	min, max := box(target.Rect)
	tree.Insert(min, max, source)
	m.size++
}

// deleteFromTree removes the spatial half of an edge. The caller removes the
// by-source half.
func (m *Map) deleteFromTree(source models.SheetPos, target models.SheetRect) {
	tree := m.regions[target.Sheet]
	if tree == nil {
		return
	}
	min, max := box(target.Rect)
	tree.Delete(min, max, source)
	m.size--
	if tree.Len() == 0 {
		delete(m.regions, target.Sheet)
	}
}

// removeEdge deletes one edge from both indices.
func (m *Map) removeEdge(e Edge) {
	targets, ok := m.bySource[e.Source]
	if !ok {
		return
	}
	if _, ok := targets[e.Target]; !ok {
		return
	}
	delete(targets, e.Target)
	if len(targets) == 0 {
		delete(m.bySource, e.Source)
	}
	m.deleteFromTree(e.Source, e.Target)
}

func box(r models.Rect) (min, max [2]float64) {
	return [2]float64{float64(r.Min.X), float64(r.Min.Y)},
		[2]float64{float64(r.Max.X), float64(r.Max.Y)}
}

func rectFromBox(min, max [2]float64) models.Rect {
	return models.Rect{
		Min: models.Pos{X: int(min[0]), Y: int(min[1])},
		Max: models.Pos{X: int(max[0]), Y: int(max[1])},
	}
}

func comparePos(a, b models.SheetPos) int {
	return cmp.Or(
		cmp.Compare(a.Sheet, b.Sheet),
		cmp.Compare(a.Pos.Y, b.Pos.Y),
		cmp.Compare(a.Pos.X, b.Pos.X),
	)
}

func compareRect(a, b models.SheetRect) int {
	return cmp.Or(
		cmp.Compare(a.Sheet, b.Sheet),
		cmp.Compare(a.Rect.Min.Y, b.Rect.Min.Y),
		cmp.Compare(a.Rect.Min.X, b.Rect.Min.X),
		cmp.Compare(a.Rect.Max.Y, b.Rect.Max.Y),
		cmp.Compare(a.Rect.Max.X, b.Rect.Max.X),
	)
}
