package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gridref-go/pkg/gridref/geometry"
	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/output"
)

func newTablesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tables FILE [REF]",
		Short: "List the tables of a workbook or resolve a structured reference",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := g.analyze(cmd, args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				views := output.TableViews(wb)
				if views == nil {
					views = []output.TableView{}
				}
				return g.writeJSON(cmd, views)
			}

			ref, err := wb.Parse(args[1])
			if err != nil {
				return err
			}
			if _, ok := ref.Range.(models.TableRef); !ok {
				return fmt.Errorf("%q is not a table reference", args[1])
			}
			region, ok := geometry.SheetBounds(ref, wb.Tables)
			if !ok {
				return fmt.Errorf("%q does not resolve to a region", args[1])
			}
			sheet, _ := wb.Sheets.SheetName(region.Sheet)
			view := output.NewReferenceView(args[1], ref.Range, wb.Format(ref), sheet, &region.Rect)
			return g.writeJSON(cmd, view)
		},
	}
}
