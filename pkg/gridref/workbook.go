package gridref

import (
	"fmt"

	"github.com/ukaji3/gridref-go/pkg/gridref/deps"
	"github.com/ukaji3/gridref-go/pkg/gridref/geometry"
	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/parser"
	"github.com/ukaji3/gridref-go/pkg/gridref/tables"
	"github.com/ukaji3/gridref-go/pkg/gridref/translate"
)

// Workbook is the analyzed reference structure of one Excel file.
type Workbook struct {
	BookName     string
	DefaultSheet models.SheetID
	Sheets       *SheetRegistry
	Tables       *tables.Registry
	Deps         *deps.Map
	PrintAreas   map[models.SheetID]models.Selection
	// Formulas counts the formula cells that were analyzed.
	Formulas int
	// Skipped lists references that could not be resolved.
	Skipped []SkippedReference
}

// SkippedReference is a formula reference left out of the dependency map.
type SkippedReference struct {
	Cell   models.SheetPos `json:"cell"`
	Text   string          `json:"text"`
	Reason string          `json:"reason"`
}

// Parse parses reference text relative to the default sheet. Table names
// are resolved through the workbook's tables.
func (w *Workbook) Parse(text string) (models.SheetReference, error) {
	return parser.ParseSheetReference(text, w.DefaultSheet, w.Sheets, w.Tables)
}

// Format renders ref, omitting the prefix for the default sheet.
func (w *Workbook) Format(ref models.SheetReference) string {
	return parser.FormatSheetReference(ref, w.DefaultSheet, w.Sheets)
}

// Dependents returns the formula cells whose references overlap text.
func (w *Workbook) Dependents(text string) ([]models.SheetPos, error) {
	ref, err := w.Parse(text)
	if err != nil {
		return nil, err
	}
	region, ok := geometry.SheetBounds(ref, w.Tables)
	if !ok {
		return nil, fmt.Errorf("reference %q does not resolve to a region", text)
	}
	return w.Deps.DependentsOf(region.Sheet, region.Rect), nil
}

// CellName renders pos as `Sheet!A1`, quoting the sheet name when needed.
func (w *Workbook) CellName(pos models.SheetPos) string {
	ref := models.SheetReference{
		Sheet: pos.Sheet,
		Range: models.CellPos{Pos: models.NewRelPos(pos.Pos.X, pos.Pos.Y)},
	}
	return parser.FormatSheetReference(ref, "", w.Sheets)
}

// InsertColumns records n columns inserted before col on the named sheet.
func (w *Workbook) InsertColumns(sheetName string, col, n int) error {
	sheet, err := w.editTarget(sheetName, col, n)
	if err != nil {
		return err
	}
	w.Deps.InsertColumns(sheet, col, n)
	w.shiftTables(sheet, func(r models.Range) (models.Range, error) {
		return translate.ShiftColumns(r, col, n)
	})
	return nil
}

// DeleteColumns records the deletion of n columns starting at col.
func (w *Workbook) DeleteColumns(sheetName string, col, n int) error {
	sheet, err := w.editTarget(sheetName, col, n)
	if err != nil {
		return err
	}
	w.Deps.DeleteColumns(sheet, col, n)
	w.dropTables(sheet, models.Rect{
		Min: models.Pos{X: col, Y: 1},
		Max: models.Pos{X: col + n - 1, Y: models.Unbounded},
	})
	w.shiftTables(sheet, func(r models.Range) (models.Range, error) {
		return translate.ShiftColumns(r, col+n, -n)
	})
	return nil
}

// InsertRows records n rows inserted before row on the named sheet.
func (w *Workbook) InsertRows(sheetName string, row, n int) error {
	sheet, err := w.editTarget(sheetName, row, n)
	if err != nil {
		return err
	}
	w.Deps.InsertRows(sheet, row, n)
	w.shiftTables(sheet, func(r models.Range) (models.Range, error) {
		return translate.ShiftRows(r, row, n)
	})
	return nil
}

// DeleteRows records the deletion of n rows starting at row.
func (w *Workbook) DeleteRows(sheetName string, row, n int) error {
	sheet, err := w.editTarget(sheetName, row, n)
	if err != nil {
		return err
	}
	w.Deps.DeleteRows(sheet, row, n)
	w.dropTables(sheet, models.Rect{
		Min: models.Pos{X: 1, Y: row},
		Max: models.Pos{X: models.Unbounded, Y: row + n - 1},
	})
	w.shiftTables(sheet, func(r models.Range) (models.Range, error) {
		return translate.ShiftRows(r, row+n, -n)
	})
	return nil
}

// RemoveSheet drops a sheet with its tables, print area and every
// dependency into or out of it.
func (w *Workbook) RemoveSheet(sheetName string) error {
	sheet, ok := w.Sheets.SheetID(sheetName)
	if !ok {
		return fmt.Errorf("%w: %q", parser.ErrUnknownSheet, sheetName)
	}
	w.Deps.RemoveSheet(sheet)
	w.Tables.RemoveSheet(sheet)
	delete(w.PrintAreas, sheet)
	w.Sheets.Remove(sheet)
	return nil
}

func (w *Workbook) editTarget(sheetName string, at, n int) (models.SheetID, error) {
	sheet, ok := w.Sheets.SheetID(sheetName)
	if !ok {
		return "", fmt.Errorf("%w: %q", parser.ErrUnknownSheet, sheetName)
	}
	if at < 1 || n < 1 || at >= models.Unbounded || n > models.Unbounded-at {
		return "", fmt.Errorf("invalid edit of %d at %d", n, at)
	}
	return sheet, nil
}

// dropTables removes the tables on sheet that overlap a deleted band.
func (w *Workbook) dropTables(sheet models.SheetID, band models.Rect) {
	for _, name := range w.Tables.Names() {
		spec, ok := w.Tables.Lookup(name)
		if ok && spec.Sheet == sheet && spec.Bounds.Intersects(band) {
			w.Tables.Remove(name)
		}
	}
}

// shiftTables moves table anchors on sheet. A table whose anchor can no
// longer be placed is removed.
func (w *Workbook) shiftTables(sheet models.SheetID, shift func(models.Range) (models.Range, error)) {
	for _, name := range w.Tables.Names() {
		spec, ok := w.Tables.Lookup(name)
		if !ok || spec.Sheet != sheet {
			continue
		}
		anchor := models.NewCellRect(
			models.NewRelPos(spec.Bounds.Min.X, spec.Bounds.Min.Y),
			models.NewRelPos(spec.Bounds.Max.X, spec.Bounds.Max.Y),
		)
		moved, err := shift(anchor)
		if err != nil {
			w.Tables.Remove(name)
			continue
		}
		rect, _ := geometry.Bounds(moved, nil)
		if rect.Width() != spec.Bounds.Width() {
			// Columns were inserted inside the table; its column list no
			// longer matches.
			w.Tables.Remove(name)
			continue
		}
		spec.Bounds = rect
		if err := w.Tables.Add(spec); err != nil {
			w.Tables.Remove(name)
		}
	}
}

// resolveReference turns one formula operand into the regions it covers.
// Defined names expand to what they refer to.
func (w *Workbook) resolveReference(text string, sheet models.SheetID, names map[string]string) ([]models.SheetRect, error) {
	if refersTo, ok := names[sheetKey(text)]; ok {
		sel, err := parser.ParseSelection(refersTo, sheet, w.Sheets, w.Tables)
		if err != nil {
			return nil, err
		}
		var regions []models.SheetRect
		for _, part := range sel.Parts {
			if part.Exclude {
				continue
			}
			ref := models.SheetReference{Sheet: sel.Sheet, Range: part.Range}
			region, ok := geometry.SheetBounds(ref, w.Tables)
			if !ok {
				return nil, fmt.Errorf("name %q does not resolve to a region", text)
			}
			regions = append(regions, region)
		}
		return regions, nil
	}

	ref, err := parser.ParseSheetReference(text, sheet, w.Sheets, w.Tables)
	if err != nil {
		return nil, err
	}
	region, ok := geometry.SheetBounds(ref, w.Tables)
	if !ok {
		return nil, fmt.Errorf("table reference %q does not resolve", text)
	}
	return []models.SheetRect{region}, nil
}
