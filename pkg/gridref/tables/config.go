package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/parser"
)

// Config is the YAML file format for tables defined outside a workbook.
//
//	default_sheet: Sheet1
//	tables:
//	  - name: Sales
//	    sheet: Sheet1
//	    range: A1:C4
//	    columns: [Region, Amount, Tax]
type Config struct {
	DefaultSheet string        `yaml:"default_sheet"`
	Tables       []TableConfig `yaml:"tables"`
}

// TableConfig describes one table in A1 notation.
type TableConfig struct {
	Name    string   `yaml:"name"`
	Sheet   string   `yaml:"sheet"`
	Range   string   `yaml:"range"`
	Columns []string `yaml:"columns"`
	// ShowHeader defaults to true.
	ShowHeader *bool `yaml:"show_header"`
	ShowName   bool  `yaml:"show_name"`
	ShowTotals bool  `yaml:"show_totals"`
}

// LoadConfig reads a YAML table config from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML table config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("tables: parse config: %w", err)
	}
	return &cfg, nil
}

// Spec converts c to a registry entry. Sheet names are resolved through
// sheets; an empty sheet means defaultSheet.
func (c TableConfig) Spec(defaultSheet models.SheetID, sheets parser.SheetNames) (models.TableSpec, error) {
	ref, err := parser.ParseSheetReference(c.Range, defaultSheet, sheets, nil)
	if err != nil {
		return models.TableSpec{}, fmt.Errorf("%w: %q: %v", ErrInvalidTable, c.Name, err)
	}
	if c.Sheet != "" {
		var id models.SheetID
		ok := false
		if sheets != nil {
			id, ok = sheets.SheetID(c.Sheet)
		}
		if !ok {
			return models.TableSpec{}, fmt.Errorf("%w: %q: unknown sheet %q", ErrInvalidTable, c.Name, c.Sheet)
		}
		ref.Sheet = id
	}

	var bounds models.Rect
	switch v := ref.Range.(type) {
	case models.CellRect:
		bounds = models.NewRect(v.Min.Pos(), v.Max.Pos())
	case models.CellPos:
		bounds = models.RectFromPos(v.Pos.Pos())
	default:
		return models.TableSpec{}, fmt.Errorf("%w: %q: range %q is not a cell range", ErrInvalidTable, c.Name, c.Range)
	}
	if bounds.Max.X >= models.Unbounded || bounds.Max.Y >= models.Unbounded {
		return models.TableSpec{}, fmt.Errorf("%w: %q: range %q is unbounded", ErrInvalidTable, c.Name, c.Range)
	}

	return models.TableSpec{
		Name:       c.Name,
		Sheet:      ref.Sheet,
		Bounds:     bounds,
		Columns:    c.Columns,
		ShowName:   c.ShowName,
		ShowHeader: c.ShowHeader == nil || *c.ShowHeader,
		ShowTotals: c.ShowTotals,
	}, nil
}
