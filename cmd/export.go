package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/export"
)

var exportKinds []string

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export sampled distributions to CSV, XLSX or PDF",
	Long: `Solve a beam and write its results to a file. The format follows the
extension:
  .csv   sampled distributions, one column per distribution
  .xlsx  workbook with Distributions, Reactions and Expressions sheets
  .pdf   summary report with section, reactions, extremes and expressions

A relative file name is placed in GOBEAM_OUTPUT_DIR when that is set.

Examples:
  gobeam export -f beam.yaml beam.xlsx
  gobeam export -f beam.yaml --kinds V,M -n 201 --fraction 1 beam.csv
  gobeam export -f beam.yaml report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addCaseFlags(exportCmd)
	addSampleFlags(exportCmd)

	exportCmd.Flags().StringSliceVar(&exportKinds, "kinds", nil, "Export only these distributions (default all)")
}

func runExport(cmd *cobra.Command, args []string) error {
	bc, sol, err := solveCase(cmd)
	if err != nil {
		return err
	}
	env, err := sampling(cmd)
	if err != nil {
		return err
	}
	kinds, err := parseKinds(exportKinds, nil)
	if err != nil {
		return err
	}

	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(env.OutputDir, path)
	}
	opts := export.Options{
		Title:    "Beam Analysis Report - " + bc.Name,
		Kinds:    kinds,
		Samples:  env.Samples,
		Fraction: env.SpanFraction,
	}
	if err := export.WriteFile(path, sol, opts); err != nil {
		return err
	}
	slog.Debug("file written", "path", path, "samples", env.Samples)
	fmt.Printf("  %s %s\n", okStyle.Render("✓ Exported to"), path)
	return nil
}
