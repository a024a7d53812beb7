// Package main provides the CLI entry point for gridref-go.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gridref-go/pkg/gridref"
	"github.com/ukaji3/gridref-go/pkg/gridref/output"
	"github.com/ukaji3/gridref-go/pkg/gridref/tables"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	pretty     bool
	configPath string
	verbose    bool
	sheet      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "gridref",
		Short: "Parse, translate and trace spreadsheet cell references",
		Long: `gridref-go parses A1-style references, shifts them the way copy/paste
and row or column edits do, resolves structured table references, and
reports which formula cells of an Excel workbook depend on a region.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&g.pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML file with additional table definitions")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log skipped references to stderr")
	rootCmd.PersistentFlags().StringVar(&g.sheet, "sheet", "", "Default sheet for references without a sheet prefix")

	rootCmd.AddCommand(
		newParseCmd(g),
		newTranslateCmd(g),
		newTablesCmd(g),
		newDepsCmd(g),
	)
	return rootCmd
}

func (g *globalFlags) logger(cmd *cobra.Command) *log.Logger {
	if !g.verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "gridref: ", 0)
}

func (g *globalFlags) loadConfig() (*tables.Config, error) {
	if g.configPath == "" {
		return nil, nil
	}
	cfg, err := tables.LoadConfig(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// analyze opens a workbook with the global flags applied.
func (g *globalFlags) analyze(cmd *cobra.Command, path string) (*gridref.Workbook, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	opts := gridref.DefaultOptions()
	opts.DefaultSheet = g.sheet
	opts.Config = cfg
	opts.Logger = g.logger(cmd)

	wb, err := gridref.Analyze(path, opts)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return wb, nil
}

func (g *globalFlags) writeJSON(cmd *cobra.Command, v any) error {
	jsonData, err := output.ToJSON(v, g.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return err
}
