package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
)

var (
	plotFormat string
	plotOutDir string
	plotKinds  []string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Write distribution diagrams to image files",
	Long: `Sample the solved distributions and write line diagrams.

By default one file is written per group:
  <name>_bending  shear V(x) over bending moment M(x)
  <name>_axial    axial force N(x)
  <name>_torque   torque T(x)
  <name>_sigma    extreme-fiber normal stress
  <name>_tau      maximum torsional shear stress

With --kinds a single stacked figure of the listed distributions is written.
The output directory defaults to GOBEAM_OUTPUT_DIR or the current directory.

Examples:
  gobeam plot -f beam.yaml
  gobeam plot -f beam.yaml --format svg --out diagrams
  gobeam plot -f beam.yaml --kinds w,V,M --format pdf`,
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)
	addCaseFlags(plotCmd)
	addSampleFlags(plotCmd)

	plotCmd.Flags().StringVar(&plotFormat, "format", "png", "Image format: png, jpg, svg or pdf")
	plotCmd.Flags().StringVarP(&plotOutDir, "out", "o", "", "Output directory")
	plotCmd.Flags().StringSliceVar(&plotKinds, "kinds", nil, "Plot only these distributions, stacked in one figure")
}

func runPlot(cmd *cobra.Command, args []string) error {
	bc, sol, err := solveCase(cmd)
	if err != nil {
		return err
	}
	env, err := sampling(cmd)
	if err != nil {
		return err
	}
	dir := env.OutputDir
	if cmd.Flags().Changed("out") {
		dir = plotOutDir
	}

	groups := diagram.PlotGroups
	if len(plotKinds) > 0 {
		kinds, err := parseKinds(plotKinds, nil)
		if err != nil {
			return err
		}
		groups = map[string][]beam.Kind{"diagram": kinds}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	printBanner("BEAM DIAGRAMS - " + bc.Name)
	for _, name := range names {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", bc.Name, name, plotFormat))
		if err := diagram.ExportDistributions(sol, groups[name], env.Samples, env.SpanFraction, path); err != nil {
			return err
		}
		slog.Debug("file written", "path", path, "kinds", groups[name])
		fmt.Printf("  %s %s\n", okStyle.Render("✓"), path)
	}
	fmt.Println()
	return nil
}
