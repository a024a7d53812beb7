package gridref

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/parser"
)

const printAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas reads the print areas of a workbook.
// Returns a map of sheet id to the selection that sheet prints.
func ExtractPrintAreas(f *excelize.File, sheets *SheetRegistry) (map[models.SheetID]models.Selection, error) {
	result := make(map[models.SheetID]models.Selection)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}

		// A print area scoped to a sheet may omit the sheet prefix.
		var scope models.SheetID
		if dn.Scope != "" {
			if id, ok := sheets.SheetID(dn.Scope); ok {
				scope = id
			}
		}

		sel, err := parser.ParseSelection(strings.TrimPrefix(dn.RefersTo, "="), scope, sheets, nil)
		if err != nil {
			return result, NewAnalysisError(dn.Scope, ComponentPrintAreas, err)
		}
		if sel.Sheet == "" {
			continue
		}
		existing := result[sel.Sheet]
		existing.Sheet = sel.Sheet
		existing.Parts = append(existing.Parts, sel.Parts...)
		result[sel.Sheet] = existing
	}

	return result, nil
}
