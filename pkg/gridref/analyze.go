package gridref

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridref-go/pkg/gridref/deps"
	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/tables"
)

// Analyze opens an Excel file and builds its sheet and table registries,
// print areas, and the dependency map of every formula cell.
func Analyze(path string, opts Options) (*Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	logger := opts.logger()
	wb := &Workbook{
		BookName:   filepath.Base(path),
		Sheets:     NewSheetRegistry(),
		Tables:     tables.NewRegistry(),
		Deps:       deps.New(),
		PrintAreas: make(map[models.SheetID]models.Selection),
	}

	sheetList := f.GetSheetList()
	for _, name := range sheetList {
		if _, err := wb.Sheets.Add(name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	}
	if len(sheetList) == 0 {
		return wb, nil
	}

	defaultName := opts.DefaultSheet
	if defaultName == "" && opts.Config != nil {
		defaultName = opts.Config.DefaultSheet
	}
	if defaultName == "" {
		defaultName = sheetList[0]
	}
	id, ok := wb.Sheets.SheetID(defaultName)
	if !ok {
		return nil, fmt.Errorf("default sheet %q not found", defaultName)
	}
	wb.DefaultSheet = id

	// Tables stored in the workbook
	if opts.ShouldIncludeTables() {
		for _, name := range sheetList {
			if err := loadTables(f, name, wb); err != nil {
				logger.Printf("warning: %v", err)
			}
		}
	}

	// Tables from the config file
	if opts.Config != nil {
		for _, tc := range opts.Config.Tables {
			spec, err := tc.Spec(wb.DefaultSheet, wb.Sheets)
			if err == nil {
				err = wb.Tables.Add(spec)
			}
			if err != nil {
				logger.Printf("warning: %v", NewAnalysisError(tc.Sheet, ComponentConfig, err))
			}
		}
	}

	// Print areas
	if opts.ShouldIncludePrintAreas() {
		areas, err := ExtractPrintAreas(f, wb.Sheets)
		if err != nil {
			logger.Printf("warning: %v", err)
		}
		for id, sel := range areas {
			wb.PrintAreas[id] = sel
		}
	}

	names := definedNames(f)
	for _, name := range sheetList {
		if err := loadFormulas(f, name, names, wb, logger); err != nil {
			logger.Printf("warning: %v", err)
		}
	}

	return wb, nil
}

// loadTables registers the tables of one sheet. Column names are read from
// the header row; tables without a header get Column1, Column2, ...
func loadTables(f *excelize.File, sheetName string, wb *Workbook) error {
	list, err := f.GetTables(sheetName)
	if err != nil {
		return NewAnalysisError(sheetName, ComponentTables, err)
	}
	sheet, _ := wb.Sheets.SheetID(sheetName)

	var errs []error
	for _, t := range list {
		bounds, err := rangeBounds(t.Range)
		if err != nil {
			errs = append(errs, NewAnalysisError(sheetName, ComponentTables, fmt.Errorf("table %q: %w", t.Name, err)))
			continue
		}
		showHeader := t.ShowHeaderRow == nil || *t.ShowHeaderRow

		columns := make([]string, 0, bounds.Width())
		for col := bounds.Min.X; col <= bounds.Max.X; col++ {
			var name string
			if showHeader {
				cell, err := excelize.CoordinatesToCellName(col, bounds.Min.Y)
				if err == nil {
					name, _ = f.GetCellValue(sheetName, cell)
				}
			}
			name = strings.TrimSpace(name)
			if name == "" {
				name = fmt.Sprintf("Column%d", col-bounds.Min.X+1)
			}
			columns = append(columns, name)
		}

		spec := models.TableSpec{
			Name:       t.Name,
			Sheet:      sheet,
			Bounds:     bounds,
			Columns:    columns,
			ShowHeader: showHeader,
		}
		if err := wb.Tables.Add(spec); err != nil {
			errs = append(errs, NewAnalysisError(sheetName, ComponentTables, err))
		}
	}
	return errors.Join(errs...)
}

// loadFormulas records the references of every formula cell on one sheet.
// References that cannot be parsed or resolved are logged and skipped.
func loadFormulas(f *excelize.File, sheetName string, names map[string]string, wb *Workbook, logger *log.Logger) error {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return NewAnalysisError(sheetName, ComponentFormulas, err)
	}
	sheet, _ := wb.Sheets.SheetID(sheetName)

	maxRow, maxCol := len(rows), 0
	for _, row := range rows {
		maxCol = max(maxCol, len(row))
	}
	if dim, err := f.GetSheetDimension(sheetName); err == nil && dim != "" {
		if bounds, err := rangeBounds(dim); err == nil {
			maxCol, maxRow = max(maxCol, bounds.Max.X), max(maxRow, bounds.Max.Y)
		}
	}

	for y := 1; y <= maxRow; y++ {
		for x := 1; x <= maxCol; x++ {
			cell, err := excelize.CoordinatesToCellName(x, y)
			if err != nil {
				continue
			}
			formula, err := f.GetCellFormula(sheetName, cell)
			if err != nil || formula == "" {
				continue
			}

			source := models.SheetPos{Sheet: sheet, Pos: models.Pos{X: x, Y: y}}
			var regions []models.SheetRect
			for _, text := range formulaReferences(formula) {
				found, err := wb.resolveReference(text, sheet, names)
				if err != nil {
					logger.Printf("warning: %v", newCellError(sheetName, cell, fmt.Errorf("skipping reference %q: %w", text, err)))
					wb.Skipped = append(wb.Skipped, SkippedReference{Cell: source, Text: text, Reason: err.Error()})
					continue
				}
				regions = append(regions, found...)
			}
			wb.Formulas++
			wb.Deps.SetRegionsForPos(source, regions)
		}
	}
	return nil
}

// rangeBounds converts an area such as "A1:C4" or a single cell name to
// its corner coordinates.
func rangeBounds(ref string) (models.Rect, error) {
	ref = strings.ReplaceAll(ref, "$", "")
	start, end, found := strings.Cut(ref, ":")
	if !found {
		end = start
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return models.Rect{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return models.Rect{}, err
	}
	return models.NewRect(
		models.Pos{X: startCol, Y: startRow},
		models.Pos{X: endCol, Y: endRow},
	), nil
}

// formulaReferences returns the range operands of formula in order of
// appearance.
func formulaReferences(formula string) []string {
	if !strings.HasPrefix(formula, "=") {
		formula = "=" + formula
	}
	ps := efp.ExcelParser()
	var refs []string
	for _, token := range ps.Parse(formula) {
		if token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeRange {
			refs = append(refs, token.TValue)
		}
	}
	return refs
}

// definedNames maps case-folded workbook-scoped names to what they refer to.
func definedNames(f *excelize.File) map[string]string {
	names := make(map[string]string)
	for _, dn := range f.GetDefinedName() {
		if dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			continue
		}
		if strings.HasPrefix(dn.Name, "_xlnm.") {
			continue
		}
		names[sheetKey(dn.Name)] = strings.TrimPrefix(dn.RefersTo, "=")
	}
	return names
}
