package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/gridref-go/pkg/gridref/models"
	"github.com/ukaji3/gridref-go/pkg/gridref/output"
	"github.com/ukaji3/gridref-go/pkg/gridref/translate"
)

type translateView struct {
	From output.ReferenceView `json:"from"`
	To   output.ReferenceView `json:"to"`
}

func newTranslateCmd(g *globalFlags) *cobra.Command {
	var (
		dx, dy int
		sheets []string
	)
	cmd := &cobra.Command{
		Use:   "translate REF",
		Short: "Move the relative coordinates of a reference by --dx columns and --dy rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newScratch(g, sheets)
			if err != nil {
				return err
			}
			ref, err := s.parse(args[0])
			if err != nil {
				return err
			}
			moved, err := translate.Translate(ref.Range, dx, dy)
			if err != nil {
				return err
			}
			to := models.SheetReference{Sheet: ref.Sheet, Range: moved}
			return g.writeJSON(cmd, translateView{
				From: s.view(args[0], ref),
				To:   s.view(args[0], to),
			})
		},
	}
	cmd.Flags().IntVar(&dx, "dx", 0, "Columns to move relative references by")
	cmd.Flags().IntVar(&dy, "dy", 0, "Rows to move relative references by")
	cmd.Flags().StringSliceVar(&sheets, "sheets", nil, "Additional sheet names that references may name")
	return cmd
}
