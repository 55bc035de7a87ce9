package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/version"
)

var verbose bool

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

const rule = "───────────────────────────────────────────────────────────────"

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Beam reactions, internal forces and stresses",
	Long: `gobeam - Go Beam Solver

A CLI tool for statically determinate straight beams with an I-shaped
cross-section, supported either as a cantilever or on a pin and a roller.

Loads are point or distributed forces and moments whose intensities are
polynomials in x. gobeam computes:
  - Support reactions from global equilibrium
  - Load, shear, bending moment, axial force and torque distributions as
    closed-form singularity (Macaulay) expressions
  - Extreme-fiber normal stress and torsional shear stress along the span
  - Factored results for NSCP 2015 load combinations`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   %s║\n", titleStyle.Render(fmt.Sprintf("gobeam v%-48s", version.Version)))
		fmt.Println("  ║   Go Beam Solver                                          ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Cantilever and pin + roller supports, with overhangs")
		fmt.Println("    • Polynomial point and distributed force and moment loads")
		fmt.Println("    • Exact V(x), M(x), N(x), T(x) in singularity functions")
		fmt.Println("    • Normal and torsional shear stress for I-sections")
		fmt.Println("    • Terminal plots, PNG/SVG/PDF diagrams, CSV/XLSX/PDF export")
		fmt.Println()
		fmt.Println("  Use 'gobeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  " + rule)
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, warnStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
}

// printBanner prints a report title between double rules.
func printBanner(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     " + titleStyle.Render(title))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

// printHeading prints a section heading over a single rule.
func printHeading(title string) {
	fmt.Println(headingStyle.Render(title))
	fmt.Println(rule)
}
