// Package output renders analysis results as JSON.
package output

import (
	"encoding/json"
	"slices"

	"github.com/ukaji3/gridref-go/pkg/gridref"
	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/parser"
)

// ToJSON serializes v, indenting with two spaces when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Area represents cell coordinate bounds. Whole rows and columns end at
// models.Unbounded.
type Area struct {
	// Ref is the area in A1 notation.
	Ref string `json:"ref"`
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// NewArea converts a resolved rectangle.
func NewArea(r models.Rect) Area {
	return Area{
		Ref: RectRef(r),
		R1:  r.Min.Y,
		C1:  r.Min.X,
		R2:  r.Max.Y,
		C2:  r.Max.X,
	}
}

// RectRef renders r in the shortest A1 form that covers it.
func RectRef(r models.Rect) string {
	var rng models.Range
	openX, openY := r.Max.X >= models.Unbounded, r.Max.Y >= models.Unbounded
	switch {
	case openX && openY && r.Min.X == 1 && r.Min.Y == 1:
		rng = models.All{}
	case openX && openY:
		rng = models.CellRect{
			Min: models.NewRelPos(r.Min.X, r.Min.Y),
			Max: models.RelPos{X: models.Rel(models.Unbounded), Y: models.Rel(models.Unbounded)},
		}
	case r.Min.Y == 1 && openY:
		rng = models.NewColumnRange(models.Rel(r.Min.X), models.Rel(r.Max.X))
	case r.Min.X == 1 && openX:
		rng = models.NewRowRange(models.Rel(r.Min.Y), models.Rel(r.Max.Y))
	case r.Min == r.Max:
		rng = models.CellPos{Pos: models.NewRelPos(r.Min.X, r.Min.Y)}
	default:
		rng = models.NewCellRect(models.NewRelPos(r.Min.X, r.Min.Y), models.NewRelPos(r.Max.X, r.Max.Y))
	}
	return parser.Format(rng)
}

// ReferenceView describes one parsed reference.
type ReferenceView struct {
	// Input is the text as given.
	Input string `json:"input"`
	// Kind names the shape of the reference.
	Kind string `json:"kind"`
	// Formatted is the canonical text form.
	Formatted string `json:"formatted"`
	// Sheet is the owning sheet name, empty when there is no workbook.
	Sheet string `json:"sheet,omitempty"`
	// Bounds is the covered region, absent for unresolved tables.
	Bounds *Area `json:"bounds,omitempty"`
}

// NewReferenceView describes r. bounds may be nil.
func NewReferenceView(input string, r models.Range, formatted, sheet string, bounds *models.Rect) ReferenceView {
	view := ReferenceView{
		Input:     input,
		Kind:      r.Kind(),
		Formatted: formatted,
		Sheet:     sheet,
	}
	if bounds != nil {
		area := NewArea(*bounds)
		view.Bounds = &area
	}
	return view
}

// TableView describes a registered table.
type TableView struct {
	Name       string   `json:"name"`
	Sheet      string   `json:"sheet"`
	Area       Area     `json:"area"`
	Columns    []string `json:"columns"`
	ShowName   bool     `json:"show_name,omitempty"`
	ShowHeader bool     `json:"show_header"`
	ShowTotals bool     `json:"show_totals,omitempty"`
}

// DependentsView lists the cells that depend on a region.
type DependentsView struct {
	// Region is the queried region.
	Region ReferenceView `json:"region"`
	// Cells are the dependent formula cells in `Sheet!A1` form.
	Cells []string `json:"cells"`
}

// SkippedView is a formula reference that could not be analyzed.
type SkippedView struct {
	Cell   string `json:"cell"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// WorkbookView summarizes an analyzed workbook.
type WorkbookView struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets are the sheet names in workbook order.
	Sheets []string `json:"sheets"`
	// Tables are the registered tables sorted by name.
	Tables []TableView `json:"tables,omitempty"`
	// PrintAreas maps sheet name to its print area selection.
	PrintAreas map[string]string `json:"print_areas,omitempty"`
	// Formulas is the number of formula cells analyzed.
	Formulas int `json:"formulas"`
	// Edges is the number of dependency edges recorded.
	Edges int `json:"edges"`
	// Skipped lists references left out of the dependency map.
	Skipped []SkippedView `json:"skipped,omitempty"`
}

// NewWorkbookView summarizes wb.
func NewWorkbookView(wb *gridref.Workbook) WorkbookView {
	view := WorkbookView{
		BookName: wb.BookName,
		Formulas: wb.Formulas,
		Edges:    wb.Deps.Len(),
	}
	for _, id := range wb.Sheets.IDs() {
		name, _ := wb.Sheets.SheetName(id)
		view.Sheets = append(view.Sheets, name)
	}
	view.Tables = TableViews(wb)
	for id, sel := range wb.PrintAreas {
		name, ok := wb.Sheets.SheetName(id)
		if !ok {
			continue
		}
		if view.PrintAreas == nil {
			view.PrintAreas = make(map[string]string)
		}
		view.PrintAreas[name] = parser.FormatSelection(sel, "", wb.Sheets)
	}
	for _, s := range wb.Skipped {
		view.Skipped = append(view.Skipped, SkippedView{
			Cell:   wb.CellName(s.Cell),
			Text:   s.Text,
			Reason: s.Reason,
		})
	}
	return view
}

// TableViews describes every table of wb sorted by name.
func TableViews(wb *gridref.Workbook) []TableView {
	var views []TableView
	for _, name := range wb.Tables.Names() {
		spec, ok := wb.Tables.Lookup(name)
		if !ok {
			continue
		}
		sheet, _ := wb.Sheets.SheetName(spec.Sheet)
		views = append(views, TableView{
			Name:       spec.Name,
			Sheet:      sheet,
			Area:       NewArea(spec.Bounds),
			Columns:    slices.Clone(spec.Columns),
			ShowName:   spec.ShowName,
			ShowHeader: spec.ShowHeader,
			ShowTotals: spec.ShowTotals,
		})
	}
	return views
}

// CellNames renders positions in `Sheet!A1` form.
func CellNames(wb *gridref.Workbook, cells []models.SheetPos) []string {
	names := make([]string, 0, len(cells))
	for _, c := range cells {
		names = append(names, wb.CellName(c))
	}
	return names
}
