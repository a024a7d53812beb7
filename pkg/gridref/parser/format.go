package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
)

// Format renders r in A1 notation. It is the inverse of Parse except that a
// range whose endpoints are equal collapses to its single-column, single-row
// or single-cell form.
func Format(r models.Range) string {
	switch v := r.(type) {
	case models.All:
		return "*"
	case models.Column:
		return formatColumn(v.Col)
	case models.Row:
		return formatRow(v.Row)
	case models.ColumnRange:
		if v.End.IsUnbounded() {
			// Every column from Start on is the open rectangle at row 1.
			return formatColumn(v.Start) + "1:"
		}
		if v.Start.Coord == v.End.Coord {
			return formatColumn(v.Start)
		}
		return formatColumn(v.Start) + ":" + formatColumn(v.End)
	case models.RowRange:
		if v.End.IsUnbounded() {
			return "A" + formatRow(v.Start) + ":"
		}
		if v.Start.Coord == v.End.Coord {
			return formatRow(v.Start)
		}
		return formatRow(v.Start) + ":" + formatRow(v.End)
	case models.CellRect:
		if v.Min.Pos() == v.Max.Pos() {
			return formatCell(v.Min)
		}
		// An open-ended rectangle keeps its trailing ':' so that `A5:` is
		// not confused with the row span `5:`.
		switch {
		case v.Max.X.IsUnbounded() && v.Max.Y.IsUnbounded():
			return formatCell(v.Min) + ":"
		case v.Max.X.IsUnbounded() && v.Min.X.Coord == 1:
			return Format(models.NewRowRange(v.Min.Y, v.Max.Y))
		case v.Max.Y.IsUnbounded() && v.Min.Y.Coord == 1:
			return Format(models.NewColumnRange(v.Min.X, v.Max.X))
		}
		// Open on one axis only: A1 has no form for it, so the open end
		// stops at the last column or row of a worksheet.
		return formatCell(v.Min) + ":" + formatCell(sheetEdge(v.Max))
	case models.CellPos:
		return formatCell(v.Pos)
	case models.TableRef:
		return FormatTableSelector(v.Selector)
	default:
		panic(fmt.Sprintf("parser: unhandled range %T", r))
	}
}

// sheetEdge replaces unbounded coordinates of p with the last column and
// row of a worksheet.
func sheetEdge(p models.RelPos) models.RelPos {
	if p.X.IsUnbounded() {
		p.X = models.Index{Coord: excelize.MaxColumns, Absolute: p.X.Absolute}
	}
	if p.Y.IsUnbounded() {
		p.Y = models.Index{Coord: excelize.TotalRows, Absolute: p.Y.Absolute}
	}
	return p
}

// FormatTableSelector renders a structured reference in canonical form.
func FormatTableSelector(sel models.TableSelector) string {
	var items []string
	switch {
	case sel.Sections == models.SectionAll:
		items = append(items, "[#All]")
	default:
		if sel.Sections.Has(models.SectionHeaders) {
			items = append(items, "[#Headers]")
		}
		if sel.Sections.Has(models.SectionData) {
			items = append(items, "[#Data]")
		}
		if sel.Sections.Has(models.SectionTotals) {
			items = append(items, "[#Totals]")
		}
	}

	if sel.ColumnStart != "" {
		// Name[Column] is only used when nothing else needs brackets.
		if len(items) == 0 && sel.ColumnEnd == "" && isSimpleColumnName(sel.ColumnStart) {
			return sel.Table + "[" + sel.ColumnStart + "]"
		}
		col := "[" + escapeColumnName(sel.ColumnStart) + "]"
		if sel.ColumnEnd != "" {
			col += ":[" + escapeColumnName(sel.ColumnEnd) + "]"
		}
		items = append(items, col)
	}

	switch len(items) {
	case 0:
		return sel.Table + "[]"
	case 1:
		if sel.ColumnStart == "" {
			return sel.Table + items[0]
		}
	}
	return sel.Table + "[" + strings.Join(items, ",") + "]"
}

func formatColumn(i models.Index) string {
	if i.Absolute {
		return "$" + ColumnToLetters(i.Coord)
	}
	return ColumnToLetters(i.Coord)
}

func formatRow(i models.Index) string {
	if i.Absolute {
		return "$" + strconv.Itoa(i.Coord)
	}
	return strconv.Itoa(i.Coord)
}

func formatCell(p models.RelPos) string {
	return formatColumn(p.X) + formatRow(p.Y)
}

func isSimpleColumnName(name string) bool {
	return strings.TrimSpace(name) == name && !strings.ContainsAny(name, ",:[]'#")
}

func escapeColumnName(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '\'', '[', ']', '#':
			b.WriteByte('\'')
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
