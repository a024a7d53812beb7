package tables

import (
	"golang.org/x/text/cases"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// Resolve computes the region of spec selected by sel. It returns false when
// a named column does not exist, when an explicitly requested section is not
// shown, or when the requested sections are not contiguous.
func Resolve(spec models.TableSpec, sel models.TableSelector) (models.Rect, bool) {
	rowLo, rowHi, ok := resolveRows(spec, sel.RowSections())
	if !ok {
		return models.Rect{}, false
	}

	colLo, colHi := spec.Bounds.Min.X, spec.Bounds.Max.X
	if sel.ColumnStart != "" {
		start := columnOffset(spec.Columns, sel.ColumnStart)
		if start < 0 {
			return models.Rect{}, false
		}
		end := start
		if sel.ColumnEnd != "" {
			end = columnOffset(spec.Columns, sel.ColumnEnd)
			if end < 0 {
				return models.Rect{}, false
			}
		}
		if start > end {
			start, end = end, start
		}
		colLo, colHi = spec.Bounds.Min.X+start, spec.Bounds.Min.X+end
	}

	return models.NewRect(models.Pos{X: colLo, Y: rowLo}, models.Pos{X: colHi, Y: rowHi}), true
}

// resolveRows lays the table out top to bottom as
// [name row][header row][data rows][totals row].
func resolveRows(spec models.TableSpec, sections models.Section) (int, int, bool) {
	top, bottom := spec.Bounds.Min.Y, spec.Bounds.Max.Y
	if spec.ShowName {
		top++
	}
	headerRow := top
	if spec.ShowHeader {
		top++
	}
	totalsRow := bottom
	if spec.ShowTotals {
		bottom--
	}
	dataLo, dataHi := top, bottom
	hasData := dataLo <= dataHi

	all := sections == models.SectionAll
	lo, hi := 0, -1
	include := func(a, b int) {
		if hi < lo {
			lo, hi = a, b
			return
		}
		lo, hi = min(lo, a), max(hi, b)
	}

	if sections.Has(models.SectionHeaders) {
		switch {
		case spec.ShowHeader:
			include(headerRow, headerRow)
		case !all:
			return 0, 0, false
		}
	}
	if sections.Has(models.SectionData) {
		switch {
		case hasData:
			include(dataLo, dataHi)
		case !all:
			return 0, 0, false
		}
	}
	if sections.Has(models.SectionTotals) {
		switch {
		case spec.ShowTotals:
			include(totalsRow, totalsRow)
		case !all:
			return 0, 0, false
		}
	}
	if hasData && !sections.Has(models.SectionData) &&
		sections.Has(models.SectionHeaders) && sections.Has(models.SectionTotals) {
		return 0, 0, false
	}
	if hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}

func columnOffset(columns []string, name string) int {
	fold := cases.Fold()
	want := fold.String(name)
	for i, c := range columns {
		if fold.String(c) == want {
			return i
		}
	}
	return -1
}
