package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/parser"
)

func rect(x1, y1, x2, y2 int) models.Rect {
	return models.NewRect(models.Pos{X: x1, Y: y1}, models.Pos{X: x2, Y: y2})
}

// fixedTables resolves every selector of one table to the same region.
type fixedTables struct {
	name   string
	region models.SheetRect
}

func (f fixedTables) ResolveTable(sel models.TableSelector) (models.SheetRect, bool) {
	if sel.Table != f.name {
		return models.SheetRect{}, false
	}
	return f.region, true
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		ref      string
		region   models.Rect
		expected bool
	}{
		{"*", rect(100, 100, 100, 100), true},
		{"A1:C3", rect(2, 2, 10, 10), true},
		{"A1:C3", rect(4, 1, 10, 10), false},
		{"A", rect(1, 50, 1, 50), true},
		{"A", rect(2, 1, 5, 5), false},
		{"$C", rect(1, 1, 3, 1), true},
		{"5", rect(1, 5, 1, 5), true},
		{"5", rect(1, 1, 10, 4), false},
		{"B:D", rect(4, 9, 8, 9), true},
		{"B:D", rect(5, 1, 8, 9), false},
		{"3:4", rect(1, 1, 1, 3), true},
		{"3:4", rect(1, 5, 1, 9), false},
		{"B2", rect(1, 1, 2, 2), true},
		{"B2", rect(3, 3, 4, 4), false},
		{"A5:", rect(1000, 1000, 1000, 1000), true},
		{"A5:", rect(1, 1, 10, 4), false},
	}

	for _, tt := range tests {
		r := parser.MustParse(tt.ref)
		result := Intersects(r, tt.region)
		if result != tt.expected {
			t.Errorf("Intersects(%q, %+v) = %v, expected %v", tt.ref, tt.region, result, tt.expected)
		}
	}

	table := models.TableRef{Selector: models.TableSelector{Table: "Sales"}}
	if Intersects(table, rect(1, 1, 100, 100)) {
		t.Error("Intersects(table, rect) = true, expected false for an unresolved table")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		ref      string
		pos      models.Pos
		expected bool
	}{
		{"*", models.Pos{X: 7, Y: 9}, true},
		{"B", models.Pos{X: 2, Y: 1000}, true},
		{"B", models.Pos{X: 3, Y: 1}, false},
		{"2", models.Pos{X: 50, Y: 2}, true},
		{"2", models.Pos{X: 50, Y: 3}, false},
		{"B:C", models.Pos{X: 3, Y: 1}, true},
		{"B:C", models.Pos{X: 1, Y: 1}, false},
		{"2:3", models.Pos{X: 1, Y: 3}, true},
		{"2:3", models.Pos{X: 1, Y: 4}, false},
		{"$A$1:B2", models.Pos{X: 2, Y: 2}, true},
		{"A1:B2", models.Pos{X: 3, Y: 2}, false},
		{"C3", models.Pos{X: 3, Y: 3}, true},
		{"C3", models.Pos{X: 3, Y: 4}, false},
	}

	for _, tt := range tests {
		r := parser.MustParse(tt.ref)
		result := Contains(r, tt.pos)
		if result != tt.expected {
			t.Errorf("Contains(%q, %+v) = %v, expected %v", tt.ref, tt.pos, result, tt.expected)
		}
	}
}

func TestBounds(t *testing.T) {
	u := models.Unbounded
	tests := []struct {
		ref      string
		expected models.Rect
	}{
		{"*", rect(1, 1, u, u)},
		{"C", rect(3, 1, 3, u)},
		{"B:D", rect(2, 1, 4, u)},
		{"4", rect(1, 4, u, 4)},
		{"2:3", rect(1, 2, u, 3)},
		{"$B$2:C9", rect(2, 2, 3, 9)},
		{"D4", rect(4, 4, 4, 4)},
		{"B5:", rect(2, 5, u, u)},
	}

	for _, tt := range tests {
		result, ok := Bounds(parser.MustParse(tt.ref), nil)
		if !ok {
			t.Errorf("Bounds(%q) = false, expected a region", tt.ref)
			continue
		}
		if diff := cmp.Diff(tt.expected, result); diff != "" {
			t.Errorf("Bounds(%q) mismatch (-expected +got):\n%s", tt.ref, diff)
		}
		if !Intersects(parser.MustParse(tt.ref), result) {
			t.Errorf("Intersects(%q, Bounds) = false", tt.ref)
		}
	}
}

func TestSheetBoundsTables(t *testing.T) {
	tables := fixedTables{
		name:   "Sales",
		region: models.SheetRect{Sheet: "other", Rect: rect(1, 2, 3, 4)},
	}
	ref := models.SheetReference{
		Sheet: "s1",
		Range: models.TableRef{Selector: models.TableSelector{Table: "Sales"}},
	}

	result, ok := SheetBounds(ref, tables)
	if !ok {
		t.Fatal("SheetBounds(Sales) = false, expected a region")
	}
	if diff := cmp.Diff(tables.region, result); diff != "" {
		t.Errorf("SheetBounds mismatch (-expected +got):\n%s", diff)
	}

	ref.Range = models.TableRef{Selector: models.TableSelector{Table: "Gone"}}
	if _, ok := SheetBounds(ref, tables); ok {
		t.Error("SheetBounds(Gone) = true, expected false")
	}
	if _, ok := SheetBounds(ref, nil); ok {
		t.Error("SheetBounds with no tables = true, expected false")
	}

	ref.Range = parser.MustParse("B2")
	result, ok = SheetBounds(ref, nil)
	if !ok || result.Sheet != "s1" || result.Rect != rect(2, 2, 2, 2) {
		t.Errorf("SheetBounds(B2) = %+v, %v", result, ok)
	}
}

func TestSelectionContains(t *testing.T) {
	sel := models.Selection{
		Sheet: "s1",
		Parts: []models.Part{
			{Range: parser.MustParse("A1:C3")},
			{Range: parser.MustParse("B2"), Exclude: true},
			{Range: parser.MustParse("E")},
		},
	}
	tests := []struct {
		pos      models.Pos
		expected bool
	}{
		{models.Pos{X: 1, Y: 1}, true},
		{models.Pos{X: 2, Y: 2}, false},
		{models.Pos{X: 3, Y: 3}, true},
		{models.Pos{X: 4, Y: 1}, false},
		{models.Pos{X: 5, Y: 500}, true},
	}

	for _, tt := range tests {
		result := SelectionContains(sel, tt.pos)
		if result != tt.expected {
			t.Errorf("SelectionContains(%+v) = %v, expected %v", tt.pos, result, tt.expected)
		}
	}

	if SelectionContains(models.Selection{}, models.Pos{X: 1, Y: 1}) {
		t.Error("SelectionContains(empty) = true, expected false")
	}
}

func TestResolvedTables(t *testing.T) {
	tables := fixedTables{
		name:   "Sales",
		region: models.SheetRect{Sheet: "s1", Rect: rect(2, 2, 4, 6)},
	}
	sales := models.TableRef{Selector: models.TableSelector{Table: "Sales"}}
	unknown := models.TableRef{Selector: models.TableSelector{Table: "Gone"}}

	tests := []struct {
		name     string
		r        models.Range
		tables   TableResolver
		region   models.Rect
		pos      models.Pos
		expected bool
	}{
		{"table overlaps", sales, tables, rect(4, 6, 9, 9), models.Pos{X: 3, Y: 3}, true},
		{"table misses", sales, tables, rect(5, 1, 9, 9), models.Pos{X: 1, Y: 1}, false},
		{"unknown table", unknown, tables, rect(1, 1, 9, 9), models.Pos{X: 3, Y: 3}, false},
		{"nil resolver", sales, nil, rect(1, 1, 9, 9), models.Pos{X: 3, Y: 3}, false},
		{"plain range", parser.MustParse("C:C"), nil, rect(3, 9, 3, 9), models.Pos{X: 3, Y: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntersectsResolved(tt.r, tt.region, tt.tables); got != tt.expected {
				t.Errorf("IntersectsResolved(%+v) = %v, expected %v", tt.region, got, tt.expected)
			}
			if got := ContainsResolved(tt.r, tt.pos, tt.tables); got != tt.expected {
				t.Errorf("ContainsResolved(%+v) = %v, expected %v", tt.pos, got, tt.expected)
			}
		})
	}

	sel := models.Selection{
		Sheet: "s1",
		Parts: []models.Part{
			{Range: sales},
			{Range: parser.MustParse("C4"), Exclude: true},
		},
	}
	if !SelectionContainsResolved(sel, models.Pos{X: 2, Y: 2}, tables) {
		t.Error("SelectionContainsResolved(B2) = false, expected true")
	}
	if SelectionContainsResolved(sel, models.Pos{X: 3, Y: 4}, tables) {
		t.Error("SelectionContainsResolved(C4) = true, expected the exclusion to win")
	}
	if SelectionContains(sel, models.Pos{X: 2, Y: 2}) {
		t.Error("SelectionContains without a resolver matched a table part")
	}
	sel.Sheet = "s2"
	if SelectionContainsResolved(sel, models.Pos{X: 2, Y: 2}, tables) {
		t.Error("SelectionContainsResolved matched a table on another sheet")
	}
}
