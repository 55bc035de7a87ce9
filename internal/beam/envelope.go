package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/nscp"
)

// CombinationResult is a beam solved under one load combination.
type CombinationResult struct {
	Combination nscp.LoadCombination
	Solution    *Solution

	// MaxMoment is the sampled bending moment of largest magnitude, at At.
	MaxMoment float64
	At        float64
}

// SolveCombinations solves the builder's loads under every combination and
// returns the results in order together with the index of the governing one,
// the combination with the largest |M|. The builder itself is left untouched.
func SolveCombinations(b *Builder, combos []nscp.LoadCombination, samples int, fraction float64) ([]CombinationResult, int, error) {
	if len(combos) == 0 {
		return nil, -1, fmt.Errorf("beam: no load combinations given")
	}

	results := make([]CombinationResult, 0, len(combos))
	governing := -1
	for i, combo := range combos {
		sol, err := b.Factored(combo).Calculate()
		if err != nil {
			return nil, -1, fmt.Errorf("combination %s: %w", combo.ID, err)
		}
		m, at, err := sol.Extremum(Moment, samples, fraction)
		if err != nil {
			return nil, -1, fmt.Errorf("combination %s: %w", combo.ID, err)
		}
		results = append(results, CombinationResult{Combination: combo, Solution: sol, MaxMoment: m, At: at})
		if governing < 0 || math.Abs(m) > math.Abs(results[governing].MaxMoment) {
			governing = i
		}
	}
	return results, governing, nil
}
