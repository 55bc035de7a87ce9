package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/config"
)

var (
	// Case file
	caseFile string

	// Geometry
	inLength          float64
	inLengthUnit      string
	inSectionUnit     string
	inFlangeWidth     float64
	inFlangeThickness float64
	inWebHeight       float64
	inWebThickness    float64

	// Supports
	inPin    float64
	inRoller float64

	// Loads
	inForces     []string
	inMoments    []string
	inMomentMode string

	// Sampling
	inSamples  int
	inFraction float64
)

// addCaseFlags registers the beam definition flags on c.
func addCaseFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVarP(&caseFile, "file", "f", "", "Beam case file (.yaml, .yml or .json)")

	f.Float64VarP(&inLength, "length", "L", 0, "Span length")
	f.StringVar(&inLengthUnit, "length-unit", "", "Unit of length, supports and load positions (M, MM, IN, FT)")
	f.StringVar(&inSectionUnit, "section-unit", "", "Unit of section dimensions (M, MM, IN, FT)")
	f.Float64Var(&inFlangeWidth, "flange-width", 0, "Flange width F")
	f.Float64Var(&inFlangeThickness, "flange-thickness", 0, "Flange thickness FT")
	f.Float64Var(&inWebHeight, "web-height", 0, "Web height W")
	f.Float64Var(&inWebThickness, "web-thickness", 0, "Web thickness WT")

	f.Float64Var(&inPin, "pin", 0, "Pin (or fixed support) position")
	f.Float64Var(&inRoller, "roller", 0, "Roller position; omit for a cantilever")

	f.StringArrayVar(&inForces, "force", nil, `Force load "fx,fy,x1[,x2[,category]]", repeatable`)
	f.StringArrayVar(&inMoments, "moment", nil, `Moment load "mx,mz,x1[,x2[,category]]", repeatable`)
	f.StringVar(&inMomentMode, "mode", "", "Distributed moment treatment: legacy or consistent")
}

// addSampleFlags registers the sampling flags on c.
func addSampleFlags(c *cobra.Command) {
	c.Flags().IntVarP(&inSamples, "samples", "n", config.DefaultSamples, "Number of sample points")
	c.Flags().Float64Var(&inFraction, "fraction", config.DefaultSpanFraction, "Sample over [0, fraction·L]")
}

// loadCase assembles the case from --file and the inline flags. Inline
// geometry flags override the file; inline loads are appended to it.
func loadCase(c *cobra.Command) (*config.Case, error) {
	bc := &config.Case{Name: "cli"}
	if caseFile != "" {
		var err error
		bc, err = config.Load(caseFile)
		if err != nil {
			return nil, err
		}
		slog.Debug("case loaded", "file", caseFile, "name", bc.Name,
			"force_loads", len(bc.ForceLoads), "moment_loads", len(bc.MomentLoads))
	}

	f := c.Flags()
	override := func(name string, dst *float64, v float64) {
		if f.Changed(name) {
			*dst = v
		}
	}
	override("length", &bc.Length, inLength)
	override("flange-width", &bc.Section.FlangeWidth, inFlangeWidth)
	override("flange-thickness", &bc.Section.FlangeThickness, inFlangeThickness)
	override("web-height", &bc.Section.WebHeight, inWebHeight)
	override("web-thickness", &bc.Section.WebThickness, inWebThickness)
	override("pin", &bc.Supports.Pin, inPin)
	if f.Changed("roller") {
		roller := inRoller
		bc.Supports.Roller = &roller
	}
	if f.Changed("length-unit") {
		bc.LengthUnit = inLengthUnit
	}
	if f.Changed("section-unit") {
		bc.SectionUnit = inSectionUnit
	}
	if f.Changed("mode") {
		bc.MomentMode = inMomentMode
	}

	for _, s := range inForces {
		l, err := config.ParseForce(s)
		if err != nil {
			return nil, err
		}
		bc.ForceLoads = append(bc.ForceLoads, l)
		slog.Debug("force load appended", "fx", l.X, "fy", l.Y, "x1", l.X1)
	}
	for _, s := range inMoments {
		l, err := config.ParseMoment(s)
		if err != nil {
			return nil, err
		}
		bc.MomentLoads = append(bc.MomentLoads, l)
		slog.Debug("moment load appended", "mx", l.X, "mz", l.Z, "x1", l.X1)
	}

	if caseFile == "" && !f.Changed("length") {
		return nil, fmt.Errorf("give a case with --file or at least --length and the section flags")
	}
	return bc, nil
}

// buildCase loads the case and returns it together with its builder.
func buildCase(c *cobra.Command) (*config.Case, *beam.Builder, error) {
	bc, err := loadCase(c)
	if err != nil {
		return nil, nil, err
	}
	b, err := bc.Build()
	if err != nil {
		return nil, nil, err
	}
	return bc, b, nil
}

// solveCase builds and solves the case.
func solveCase(c *cobra.Command) (*config.Case, *beam.Solution, error) {
	bc, b, err := buildCase(c)
	if err != nil {
		return nil, nil, err
	}
	sol, err := b.Calculate()
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("reactions solved", "kind", sol.Reactions().Kind, "reactions", sol.Reactions().Map())
	return bc, sol, nil
}

// sampling merges the environment with the sampling flags.
func sampling(c *cobra.Command) (config.Env, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return config.Env{}, err
	}
	if c.Flags().Changed("samples") {
		env.Samples = inSamples
	}
	if c.Flags().Changed("fraction") {
		env.SpanFraction = inFraction
	}
	return env, env.Validate()
}

// parseKinds maps distribution names to kinds; an empty list means fallback.
func parseKinds(names []string, fallback []beam.Kind) ([]beam.Kind, error) {
	if len(names) == 0 {
		return fallback, nil
	}
	kinds := make([]beam.Kind, 0, len(names))
	for _, n := range names {
		k, err := beam.ParseKind(n)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
