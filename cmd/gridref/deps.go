package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gridref-go/pkg/gridref"
	"github.com/ukaji3/gridref-go/pkg/gridref/geometry"
	"github.com/ukaji3/gridref-go/pkg/gridref/output"
)

// editFlags are the structural edits applied before the query.
type editFlags struct {
	insertColumn, deleteColumn int
	insertRow, deleteRow       int
	count                      int
}

func (e editFlags) apply(wb *gridref.Workbook, sheet string) error {
	if e.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", e.count)
	}
	if e.insertColumn != 0 {
		if err := wb.InsertColumns(sheet, e.insertColumn, e.count); err != nil {
			return err
		}
	}
	if e.deleteColumn != 0 {
		if err := wb.DeleteColumns(sheet, e.deleteColumn, e.count); err != nil {
			return err
		}
	}
	if e.insertRow != 0 {
		if err := wb.InsertRows(sheet, e.insertRow, e.count); err != nil {
			return err
		}
	}
	if e.deleteRow != 0 {
		if err := wb.DeleteRows(sheet, e.deleteRow, e.count); err != nil {
			return err
		}
	}
	return nil
}

func newDepsCmd(g *globalFlags) *cobra.Command {
	var (
		region string
		edits  editFlags
	)
	cmd := &cobra.Command{
		Use:   "deps FILE",
		Short: "Summarize the dependencies of a workbook or list the cells depending on --region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := g.analyze(cmd, args[0])
			if err != nil {
				return err
			}
			sheet, _ := wb.Sheets.SheetName(wb.DefaultSheet)
			if err := edits.apply(wb, sheet); err != nil {
				return err
			}
			if region == "" {
				return g.writeJSON(cmd, output.NewWorkbookView(wb))
			}

			ref, err := wb.Parse(region)
			if err != nil {
				return err
			}
			cells, err := wb.Dependents(region)
			if err != nil {
				return err
			}
			bounds, _ := geometry.SheetBounds(ref, wb.Tables)
			sheetName, _ := wb.Sheets.SheetName(bounds.Sheet)
			return g.writeJSON(cmd, output.DependentsView{
				Region: output.NewReferenceView(region, ref.Range, wb.Format(ref), sheetName, &bounds.Rect),
				Cells:  output.CellNames(wb, cells),
			})
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "Region to find dependents of")
	cmd.Flags().IntVar(&edits.insertColumn, "insert-column", 0, "Insert columns before this column of the default sheet first")
	cmd.Flags().IntVar(&edits.deleteColumn, "delete-column", 0, "Delete columns starting at this column of the default sheet first")
	cmd.Flags().IntVar(&edits.insertRow, "insert-row", 0, "Insert rows before this row of the default sheet first")
	cmd.Flags().IntVar(&edits.deleteRow, "delete-row", 0, "Delete rows starting at this row of the default sheet first")
	cmd.Flags().IntVar(&edits.count, "count", 1, "Number of columns or rows to insert or delete")
	return cmd
}
