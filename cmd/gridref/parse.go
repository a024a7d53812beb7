package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/gridref-go/pkg/gridref"
	"github.com/ukaji3/gridref-go/pkg/gridref/geometry"
	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/output"
	"github.com/ukaji3/gridref-go/pkg/gridref/parser"
	"github.com/ukaji3/gridref-go/pkg/gridref/tables"
)

const defaultSheetName = "Sheet1"

// scratch is the naming context for references parsed without a workbook.
type scratch struct {
	sheets       *gridref.SheetRegistry
	tables       *tables.Registry
	defaultSheet models.SheetID
}

// newScratch registers the default sheet, any extra sheet names, and the
// tables of the config file.
func newScratch(g *globalFlags, extraSheets []string) (*scratch, error) {
	s := &scratch{
		sheets: gridref.NewSheetRegistry(),
		tables: tables.NewRegistry(),
	}
	name := g.sheet
	if name == "" {
		name = defaultSheetName
	}
	id, err := s.sheets.Add(name)
	if err != nil {
		return nil, err
	}
	s.defaultSheet = id
	for _, extra := range extraSheets {
		if _, ok := s.sheets.SheetID(extra); ok {
			continue
		}
		if _, err := s.sheets.Add(extra); err != nil {
			return nil, err
		}
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return s, nil
	}
	for _, tc := range cfg.Tables {
		if tc.Sheet != "" {
			if _, ok := s.sheets.SheetID(tc.Sheet); !ok {
				if _, err := s.sheets.Add(tc.Sheet); err != nil {
					return nil, err
				}
			}
		}
		spec, err := tc.Spec(s.defaultSheet, s.sheets)
		if err != nil {
			return nil, err
		}
		if err := s.tables.Add(spec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *scratch) parse(text string) (models.SheetReference, error) {
	return parser.ParseSheetReference(text, s.defaultSheet, s.sheets, s.tables)
}

func (s *scratch) view(input string, ref models.SheetReference) output.ReferenceView {
	sheet, _ := s.sheets.SheetName(ref.Sheet)
	var bounds *models.Rect
	if region, ok := geometry.SheetBounds(ref, s.tables); ok {
		bounds = &region.Rect
		sheet, _ = s.sheets.SheetName(region.Sheet)
	}
	formatted := parser.FormatSheetReference(ref, s.defaultSheet, s.sheets)
	return output.NewReferenceView(input, ref.Range, formatted, sheet, bounds)
}

func newParseCmd(g *globalFlags) *cobra.Command {
	var sheets []string
	cmd := &cobra.Command{
		Use:   "parse REF...",
		Short: "Parse references and print their canonical form and bounds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newScratch(g, sheets)
			if err != nil {
				return err
			}
			views := make([]output.ReferenceView, 0, len(args))
			for _, arg := range args {
				ref, err := s.parse(arg)
				if err != nil {
					return err
				}
				views = append(views, s.view(arg, ref))
			}
			if len(views) == 1 {
				return g.writeJSON(cmd, views[0])
			}
			return g.writeJSON(cmd, views)
		},
	}
	cmd.Flags().StringSliceVar(&sheets, "sheets", nil, "Additional sheet names that references may name")
	return cmd
}
