package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

var (
	// Options
	showAll       bool
	useSimplified bool
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Solve the beam under NSCP load combinations",
	Long: `Solve the beam once per NSCP 2015 load combination, with every load
scaled by the factor its category receives, and report the combination
giving the largest bending moment magnitude.

Each load may carry a category as the last field of --force/--moment or
as "category" in a case file:
  D  - Dead load (default)
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Dead and live point loads at midspan
  gobeam combos -f beam.yaml --force "0,-40,5,,L"

  # Gravity combinations only, all results listed
  gobeam combos -f beam.yaml --simplified --all`,
	RunE: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)
	addCaseFlags(combosCmd)
	addSampleFlags(combosCmd)

	combosCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	combosCmd.Flags().BoolVarP(&useSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runCombos(cmd *cobra.Command, args []string) error {
	bc, b, err := buildCase(cmd)
	if err != nil {
		return err
	}
	env, err := sampling(cmd)
	if err != nil {
		return err
	}

	// Select which combinations to use
	combinations := nscp.LoadCombinations
	if useSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	results, governing, err := beam.SolveCombinations(b, combinations, env.Samples, env.SpanFraction)
	if err != nil {
		return err
	}

	printBanner("NSCP 2015 LOAD COMBINATIONS - " + bc.Name)

	printHeading("LOADS BY CATEGORY:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	counts := map[nscp.Category]int{}
	for _, f := range b.Forces() {
		counts[f.Category]++
	}
	for _, m := range b.Moments() {
		counts[m.Category]++
	}
	for _, c := range nscp.Categories {
		if counts[c] > 0 {
			fmt.Fprintf(w, "  %s:\t%d load(s)\n", c, counts[c])
		}
	}
	w.Flush()
	fmt.Println()

	if showAll {
		printHeading("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tmax |M|\tat x\n")
		fmt.Fprintf(w, "  ─\t───────────\t───────\t────\n")
		for i, r := range results {
			marker := ""
			if i == governing {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.6g\t%.4g%s\n", r.Combination.ID, r.Combination.Description, r.MaxMoment, r.At, marker)
		}
		w.Flush()
		fmt.Println()
	}

	gov := results[governing]
	printHeading("RESULT:")
	fmt.Printf("  Governing Combination: %s (%s)\n", gov.Combination.ID, gov.Combination.Description)
	fmt.Println()
	printReactions(gov.Solution)
	fmt.Print(drawResultBox(gov))
	fmt.Println(dimStyle.Render(fmt.Sprintf("  sampled with %d points over [0, %g·L]", env.Samples, env.SpanFraction)))
	fmt.Println()
	return nil
}

func drawResultBox(r beam.CombinationResult) string {
	return fmt.Sprintf("  ╔═══════════════════════════════════════════╗\n"+
		"  ║  FACTORED MOMENT Mu = %-12.6g at x = %-6.4g\n"+
		"  ╚═══════════════════════════════════════════╝\n", r.MaxMoment, r.At)
}
