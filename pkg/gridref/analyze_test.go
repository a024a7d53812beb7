package gridref

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/parser"
	"github.com/ukaji3/gridref-go/pkg/gridref/tables"
)

// writeTestWorkbook saves a two-sheet workbook with formulas, a table, a
// defined name and a print area. Formula rows carry a trailing value so
// that GetRows covers the formula cells.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}

	values := map[string]any{
		"A1": 10, "B1": 20, "D1": "end",
		"A2": 5, "D2": "end",
		"F1": "Region", "G1": "Amount", "H1": "Tax",
		"F2": "North", "G2": 100, "H2": 8,
		"F3": "South", "G3": 200, "H3": 16,
		"F4": "East", "G4": 300, "H4": 24,
	}
	for cell, v := range values {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("Failed to set %s: %v", cell, err)
		}
	}
	formulas := []struct{ sheet, cell, formula string }{
		{"Sheet1", "C1", "A1+B1"},
		{"Sheet1", "C2", "SUM(G2:G4)*Rate"},
		{"Data", "A1", "Sheet1!A1*2"},
		{"Data", "B1", "Missing!A1+1"},
	}
	for _, fm := range formulas {
		if err := f.SetCellFormula(fm.sheet, fm.cell, fm.formula); err != nil {
			t.Fatalf("Failed to set formula %s!%s: %v", fm.sheet, fm.cell, err)
		}
	}
	if err := f.SetCellValue("Data", "C1", "end"); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}
	if err := f.SetCellValue("Data", "B2", 0.5); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	if err := f.AddTable("Sheet1", &excelize.Table{Range: "F1:H4", Name: "Sales"}); err != nil {
		t.Fatalf("Failed to add table: %v", err)
	}
	if err := f.SetDefinedName(&excelize.DefinedName{Name: "Rate", RefersTo: "Data!$B$2"}); err != nil {
		t.Fatalf("Failed to add defined name: %v", err)
	}
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Sheet1!$A$1:$D$10",
		Scope:    "Sheet1",
	}); err != nil {
		t.Fatalf("Failed to add print area: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func dependentNames(t *testing.T, wb *Workbook, ref string) []string {
	t.Helper()
	cells, err := wb.Dependents(ref)
	if err != nil {
		t.Fatalf("Dependents(%q) failed: %v", ref, err)
	}
	names := []string{}
	for _, c := range cells {
		names = append(names, wb.CellName(c))
	}
	return names
}

func TestAnalyze(t *testing.T) {
	path := writeTestWorkbook(t)

	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = log.New(&logs, "", 0)
	wb, err := Analyze(path, opts)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if wb.BookName != "test.xlsx" {
		t.Errorf("BookName = %q, expected test.xlsx", wb.BookName)
	}
	if wb.Formulas != 4 {
		t.Errorf("Formulas = %d, expected 4", wb.Formulas)
	}
	if name, _ := wb.Sheets.SheetName(wb.DefaultSheet); name != "Sheet1" {
		t.Errorf("default sheet = %q, expected Sheet1", name)
	}

	spec, ok := wb.Tables.Lookup("sales")
	if !ok {
		t.Fatal("table Sales was not registered")
	}
	if diff := cmp.Diff([]string{"Region", "Amount", "Tax"}, spec.Columns); diff != "" {
		t.Errorf("table columns mismatch (-expected +got):\n%s", diff)
	}

	tests := []struct {
		ref      string
		expected []string
	}{
		{"A1", []string{"Sheet1!C1", "Data!A1"}},
		{"B1", []string{"Sheet1!C1"}},
		{"A1:B1", []string{"Sheet1!C1", "Data!A1"}},
		{"G3", []string{"Sheet1!C2"}},
		{"Sales[Amount]", []string{"Sheet1!C2"}},
		{"Sales[Tax]", []string{}},
		{"Data!B2", []string{"Sheet1!C2"}},
		{"Data!A1", []string{}},
		{"Z", []string{}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, dependentNames(t, wb, tt.ref)); diff != "" {
			t.Errorf("Dependents(%q) mismatch (-expected +got):\n%s", tt.ref, diff)
		}
	}

	if len(wb.Skipped) != 1 || wb.Skipped[0].Text != "Missing!A1" {
		t.Errorf("Skipped = %+v, expected the Missing!A1 reference", wb.Skipped)
	}
	if !bytes.Contains(logs.Bytes(), []byte("Missing!A1")) {
		t.Errorf("log %q does not mention the skipped reference", logs.String())
	}

	area, ok := wb.PrintAreas[wb.DefaultSheet]
	if !ok {
		t.Fatal("print area for Sheet1 was not read")
	}
	if got := parser.FormatSelection(area, wb.DefaultSheet, wb.Sheets); got != "$A$1:$D$10" {
		t.Errorf("print area = %q, expected $A$1:$D$10", got)
	}
}

func TestAnalyzeStructuralEdits(t *testing.T) {
	wb, err := Analyze(writeTestWorkbook(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if err := wb.InsertColumns("Sheet1", 1, 1); err != nil {
		t.Fatalf("InsertColumns failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Sheet1!D1", "Data!A1"}, dependentNames(t, wb, "B1")); diff != "" {
		t.Errorf("Dependents(B1) after insert mismatch (-expected +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Sheet1!D1"}, dependentNames(t, wb, "C1")); diff != "" {
		t.Errorf("Dependents(C1) after insert mismatch (-expected +got):\n%s", diff)
	}
	spec, _ := wb.Tables.Lookup("Sales")
	if spec.Bounds != models.NewRect(models.Pos{X: 7, Y: 1}, models.Pos{X: 9, Y: 4}) {
		t.Errorf("table bounds after insert = %+v, expected G1:I4", spec.Bounds)
	}
	if diff := cmp.Diff([]string{"Sheet1!D2"}, dependentNames(t, wb, "Sales[Amount]")); diff != "" {
		t.Errorf("Dependents(Sales[Amount]) after insert mismatch (-expected +got):\n%s", diff)
	}

	if err := wb.DeleteColumns("Sheet1", 8, 1); err != nil {
		t.Fatalf("DeleteColumns failed: %v", err)
	}
	if wb.Tables.HasTable("Sales") {
		t.Error("table Sales survived deleting one of its columns")
	}
	if _, err := wb.Dependents("Sales[Amount]"); err == nil {
		t.Error("Dependents(Sales[Amount]) after the table was dropped = nil error")
	}

	if err := wb.InsertRows("Data", 1, 2); err != nil {
		t.Fatalf("InsertRows failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Sheet1!D2"}, dependentNames(t, wb, "Data!B4")); diff != "" {
		t.Errorf("Dependents(Data!B4) after insert mismatch (-expected +got):\n%s", diff)
	}
	if err := wb.DeleteRows("Data", 1, 2); err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Sheet1!D2"}, dependentNames(t, wb, "Data!B2")); diff != "" {
		t.Errorf("Dependents(Data!B2) after delete mismatch (-expected +got):\n%s", diff)
	}

	if err := wb.InsertColumns("Nope", 1, 1); !errors.Is(err, parser.ErrUnknownSheet) {
		t.Errorf("InsertColumns(Nope) error = %v, expected ErrUnknownSheet", err)
	}
	if err := wb.InsertRows("Data", 0, 1); err == nil {
		t.Error("InsertRows at row 0 = nil error")
	}
	before := wb.Deps.Len()
	for _, n := range []int{math.MaxInt, models.Unbounded} {
		if err := wb.InsertColumns("Sheet1", 1, n); err == nil {
			t.Errorf("InsertColumns of %d columns = nil error", n)
		}
		if err := wb.DeleteRows("Data", 2, n); err == nil {
			t.Errorf("DeleteRows of %d rows = nil error", n)
		}
	}
	if wb.Deps.Len() != before {
		t.Errorf("Len() = %d after rejected edits, expected %d", wb.Deps.Len(), before)
	}
}

func TestAnalyzeRemoveSheet(t *testing.T) {
	wb, err := Analyze(writeTestWorkbook(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	edges := wb.Deps.Len()

	if err := wb.RemoveSheet("Data"); err != nil {
		t.Fatalf("RemoveSheet failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Sheet1!C1"}, dependentNames(t, wb, "A1")); diff != "" {
		t.Errorf("Dependents(A1) after RemoveSheet mismatch (-expected +got):\n%s", diff)
	}
	for e := range wb.Deps.Edges() {
		if name, ok := wb.Sheets.SheetName(e.Source.Sheet); !ok || name == "Data" {
			t.Errorf("edge %+v survived RemoveSheet", e)
		}
		if _, ok := wb.Sheets.SheetName(e.Target.Sheet); !ok {
			t.Errorf("edge %+v targets a removed sheet", e)
		}
	}
	if wb.Deps.Len() >= edges {
		t.Errorf("Len() = %d after RemoveSheet, expected fewer than %d", wb.Deps.Len(), edges)
	}
	if _, err := wb.Dependents("Data!A1"); !errors.Is(err, parser.ErrUnknownSheet) {
		t.Errorf("Dependents(Data!A1) error = %v, expected ErrUnknownSheet", err)
	}
	if err := wb.RemoveSheet("Data"); !errors.Is(err, parser.ErrUnknownSheet) {
		t.Errorf("second RemoveSheet error = %v, expected ErrUnknownSheet", err)
	}
}

func TestAnalyzeOptions(t *testing.T) {
	path := writeTestWorkbook(t)
	cfg, err := tables.ParseConfig([]byte(`
default_sheet: Data
tables:
  - name: Rates
    range: B1:B2
    columns: [Rate]
  - name: Broken
    range: "A:B"
    columns: [a, b]
`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	noTables, noAreas := false, false
	opts := Options{
		Config:            cfg,
		IncludeTables:     &noTables,
		IncludePrintAreas: &noAreas,
	}
	wb, err := Analyze(path, opts)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if name, _ := wb.Sheets.SheetName(wb.DefaultSheet); name != "Data" {
		t.Errorf("default sheet = %q, expected Data from the config", name)
	}
	if diff := cmp.Diff([]string{"Rates"}, wb.Tables.Names()); diff != "" {
		t.Errorf("Names mismatch (-expected +got):\n%s", diff)
	}
	if len(wb.PrintAreas) != 0 {
		t.Errorf("PrintAreas = %v, expected none", wb.PrintAreas)
	}
	if diff := cmp.Diff([]string{"Sheet1!C2"}, dependentNames(t, wb, "Rates[Rate]")); diff != "" {
		t.Errorf("Dependents(Rates[Rate]) mismatch (-expected +got):\n%s", diff)
	}
	// Workbook tables were not loaded.
	if _, err := wb.Dependents("Sales[Amount]"); !errors.Is(err, parser.ErrInvalidTable) {
		t.Errorf("Dependents(Sales[Amount]) error = %v, expected ErrInvalidTable", err)
	}

	opts = DefaultOptions()
	opts.DefaultSheet = "Nope"
	if _, err := Analyze(path, opts); err == nil {
		t.Error("Analyze with an unknown default sheet = nil error")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Analyze(filepath.Join(dir, "missing.xlsx"), DefaultOptions()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Analyze(missing) error = %v, expected ErrFileNotFound", err)
	}

	bad := filepath.Join(dir, "bad.xlsx")
	if err := os.WriteFile(bad, []byte("not a workbook"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := Analyze(bad, DefaultOptions()); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Analyze(bad) error = %v, expected ErrInvalidFormat", err)
	}
}

func TestFormulaReferences(t *testing.T) {
	tests := []struct {
		formula  string
		expected []string
	}{
		{"A1+B1", []string{"A1", "B1"}},
		{"=SUM($A$1:B3)*2", []string{"$A$1:B3"}},
		{"Sheet2!A1&\"A1\"", []string{"Sheet2!A1"}},
		{"IF(TRUE,C:C,1)", []string{"C:C"}},
		{"1+2", nil},
	}

	for _, tt := range tests {
		result := formulaReferences(tt.formula)
		if diff := cmp.Diff(tt.expected, result); diff != "" {
			t.Errorf("formulaReferences(%q) mismatch (-expected +got):\n%s", tt.formula, diff)
		}
	}
}

func TestAnalysisError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AnalysisError
		expected string
	}{
		{
			name:     "sheet",
			err:      NewAnalysisError("Sheet1", ComponentTables, parser.ErrInvalidTable),
			expected: `tables: sheet "Sheet1": invalid table reference`,
		},
		{
			name:     "cell",
			err:      newCellError("Data", "B1", parser.ErrUnknownSheet),
			expected: `formulas: Data!B1: unknown sheet`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Error() = %q, expected %q", tt.err.Error(), tt.expected)
			}
			var ae *AnalysisError
			if !errors.As(fmt.Errorf("wrapped: %w", tt.err), &ae) || ae.Component != tt.err.Component {
				t.Errorf("errors.As did not recover the AnalysisError")
			}
			if !errors.Is(tt.err, tt.err.Err) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.err.Err)
			}
		})
	}
}

func TestRangeBounds(t *testing.T) {
	tests := []struct {
		ref      string
		expected models.Rect
		wantErr  bool
	}{
		{"A1:C4", models.NewRect(models.Pos{X: 1, Y: 1}, models.Pos{X: 3, Y: 4}), false},
		{"$B$2:$D$9", models.NewRect(models.Pos{X: 2, Y: 2}, models.Pos{X: 4, Y: 9}), false},
		{"C4:A1", models.NewRect(models.Pos{X: 1, Y: 1}, models.Pos{X: 3, Y: 4}), false},
		{"E5", models.RectFromPos(models.Pos{X: 5, Y: 5}), false},
		{"A1:", models.Rect{}, true},
		{"nope", models.Rect{}, true},
	}

	for _, tt := range tests {
		result, err := rangeBounds(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("rangeBounds(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if result != tt.expected {
			t.Errorf("rangeBounds(%q) = %+v, expected %+v", tt.ref, result, tt.expected)
		}
	}
}
