package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/poly"
)

var (
	solveLaTeX bool
	solvePlot  []string
	solveAt    []float64
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a beam: reactions, distributions and stresses",
	Long: `Solve a statically determinate beam and print the support reactions,
the closed-form distributions w, V, M, N, T, sigma and tau, and their
sampled extreme values.

A beam is read from a case file, built from flags, or both (flags override
the file geometry and add loads).

Examples:
  # Simply supported 10 m span with a 100 kN midspan load
  gobeam solve -L 10 --pin 0 --roller 10 \
    --flange-width 0.2 --flange-thickness 0.02 --web-height 0.3 --web-thickness 0.01 \
    --force "0,-100,5"

  # Cantilever fixed at 0 with a triangular load, values at two points
  gobeam solve -L 3 --flange-width 0.2 --flange-thickness 0.02 \
    --web-height 0.3 --web-thickness 0.01 --force "0,-2*x,0,3" --at 1 --at 2

  # From a file, with terminal plots of V and M and LaTeX output
  gobeam solve -f beam.yaml --plot V,M --latex`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	addCaseFlags(solveCmd)
	addSampleFlags(solveCmd)

	solveCmd.Flags().BoolVar(&solveLaTeX, "latex", false, "Print distributions as LaTeX")
	solveCmd.Flags().StringSliceVar(&solvePlot, "plot", nil, "Draw terminal plots of these distributions (e.g. V,M,sigma)")
	solveCmd.Flags().Float64SliceVar(&solveAt, "at", nil, "Evaluate every distribution at these positions")
}

func runSolve(cmd *cobra.Command, args []string) error {
	bc, sol, err := solveCase(cmd)
	if err != nil {
		return err
	}
	env, err := sampling(cmd)
	if err != nil {
		return err
	}
	plotKinds, err := parseKinds(solvePlot, nil)
	if err != nil {
		return err
	}

	printBanner("BEAM SOLUTION - " + bc.Name)
	printInput(sol)
	printReactions(sol)

	printHeading("DISTRIBUTIONS:")
	for _, k := range beam.Kinds() {
		text := sol.Text(k)
		if solveLaTeX {
			text = sol.LaTeX(k)
		}
		fmt.Printf("  %s(x) = %s\n", k, text)
	}
	fmt.Println()

	printHeading(fmt.Sprintf("EXTREME VALUES (%d samples over [0, %g·L]):", env.Samples, env.SpanFraction))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range beam.Kinds() {
		v, at, err := sol.Extremum(k, env.Samples, env.SpanFraction)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s:\t%.6g\tat x = %.4g\n", k.Title(), v, at)
	}
	w.Flush()
	fmt.Println()

	if len(solveAt) > 0 {
		printHeading("VALUES AT POSITIONS:")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprint(w, "  x")
		for _, k := range beam.Kinds() {
			fmt.Fprintf(w, "\t%s", k)
		}
		fmt.Fprintln(w)
		for _, x := range solveAt {
			fmt.Fprintf(w, "  %g", x)
			for _, k := range beam.Kinds() {
				v, err := sol.Evaluate(k, x)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "\t%.6g", v)
			}
			fmt.Fprintln(w)
		}
		w.Flush()
		fmt.Println()
	}

	printEquilibrium(sol)

	for _, k := range plotKinds {
		chart, err := diagram.DrawASCIIDistribution(sol, k, env.Samples, env.SpanFraction, diagram.DefaultPlotOptions)
		if err != nil {
			return err
		}
		fmt.Println(chart)
		fmt.Println()
	}
	return nil
}

func printInput(sol *beam.Solution) {
	printHeading("INPUT DATA:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Span length (L):\t%g\n", sol.Length())
	sup := sol.Supports()
	if sup.Kind() == beam.PinRoller {
		fmt.Fprintf(w, "  Supports:\tpin at %g, roller at %g\n", sup.Pin, *sup.Roller)
	} else {
		fmt.Fprintf(w, "  Supports:\tcantilever fixed at %g\n", sup.Pin)
	}
	sec := sol.Section()
	fmt.Fprintf(w, "  Flange (F x FT):\t%g x %g\n", sec.FlangeWidth, sec.FlangeThickness)
	fmt.Fprintf(w, "  Web (W x WT):\t%g x %g\n", sec.WebHeight, sec.WebThickness)
	fmt.Fprintf(w, "  Moment loads:\t%s\n", sol.MomentMode())
	for i, f := range sol.Forces() {
		fmt.Fprintf(w, "  Force %d:\tfx = %s, fy = %s on %s [%s]\n", i+1, loadText(f.X), loadText(f.Y), span(f.Interval), f.Category)
	}
	for i, m := range sol.Moments() {
		fmt.Fprintf(w, "  Moment %d:\tmx = %s, mz = %s on %s [%s]\n", i+1, loadText(m.X), loadText(m.Z), span(m.Interval), m.Category)
	}
	w.Flush()
	fmt.Println()
}

func loadText(p poly.Poly) string {
	if solveLaTeX {
		return p.LaTeX()
	}
	return p.String()
}

func span(iv beam.Interval) string {
	if iv.IsPoint() {
		return fmt.Sprintf("x = %g", iv.Start)
	}
	return fmt.Sprintf("[%g, %g]", iv.Start, iv.End)
}

func printReactions(sol *beam.Solution) {
	r := sol.Reactions()
	m := r.Map()
	lines := make([]string, 0, len(m))
	for _, k := range r.Keys() {
		lines = append(lines, fmt.Sprintf("%-4s = %.6g", k, m[k]))
	}
	fmt.Print(diagram.DrawSummaryBox(fmt.Sprintf("REACTIONS (%s)", r.Kind), lines))
	fmt.Println()
}

func printEquilibrium(sol *beam.Solution) {
	res := sol.Equilibrium()
	if res.IsZero() {
		fmt.Println("  " + okStyle.Render("✓ Equilibrium satisfied exactly"))
	} else {
		fmt.Println("  " + warnStyle.Render(fmt.Sprintf("⚠ Out of balance: Fx=%s Fy=%s Mz=%s Tx=%s",
			res.ForceX.FloatString(6), res.ForceY.FloatString(6), res.MomentZ.FloatString(6), res.TorqueX.FloatString(6))))
	}
	fmt.Println()
}
