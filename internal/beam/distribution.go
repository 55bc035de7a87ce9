package beam

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/poly"
	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/alexiusacademia/gobeam/internal/singularity"
)

// MomentMode selects how the bending component of a distributed moment load
// enters the distributions.
type MomentMode int

const (
	// MomentLegacy places the whole bending intensity z(x) on a doublet at the
	// start of every moment load, point or distributed, and additionally
	// subtracts the distributed intensity as a box function when building M(x).
	// For a distributed load the doublet expands to z(x1)·<x-x1>^-2 minus an
	// impulse z'(x1)·<x-x1>^-1.
	MomentLegacy MomentMode = iota

	// MomentConsistent uses the doublet only for point moment loads, so a
	// distributed moment load changes M(x) by exactly its integral.
	MomentConsistent
)

func (m MomentMode) String() string {
	if m == MomentConsistent {
		return "consistent"
	}
	return "legacy"
}

// ParseMomentMode accepts "legacy" and "consistent". Empty means legacy.
func ParseMomentMode(s string) (MomentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return MomentLegacy, nil
	case "consistent":
		return MomentConsistent, nil
	}
	return MomentLegacy, fmt.Errorf("unknown moment mode %q (use legacy or consistent)", s)
}

type distributions [kindCount]singularity.Expr

func buildDistributions(s Supports, forces []ForceLoad, moments []MomentLoad, r Reactions, mode MomentMode) distributions {
	pin := poly.Rat(s.Pin)

	// load intensity w(x)
	w := singularity.Zero
	for _, f := range forces {
		w = w.Sub(intensity(f.Y, f.Interval))
	}
	for _, m := range moments {
		x1, _ := m.Interval.bounds()
		if m.Interval.IsPoint() {
			w = w.Add(singularity.Macaulay(m.Z.EvalRat(x1), x1, -2))
			continue
		}
		if mode == MomentConsistent {
			continue
		}
		// z(x)·<x-x1>^-2 = z(x1)·<x-x1>^-2 - z'(x1)·<x-x1>^-1
		w = w.Add(singularity.Macaulay(m.Z.EvalRat(x1), x1, -2))
		w = w.Sub(singularity.Macaulay(m.Z.Derivative().EvalRat(x1), x1, -1))
	}
	if r.Kind == PinRoller {
		w = w.Sub(singularity.Macaulay(r.Ny1, pin, -1))
		w = w.Sub(singularity.Macaulay(r.Ny2, poly.Rat(*s.Roller), -1))
	} else {
		w = w.Sub(singularity.Macaulay(r.Ny, pin, -1))
		w = w.Add(singularity.Macaulay(r.Mz, pin, -2))
	}

	shear := w.Integrate().Neg()

	// distributed moment intensity reapplied as box functions
	boxes := singularity.Zero
	for _, m := range moments {
		x1, x2 := m.Interval.bounds()
		boxes = boxes.Add(singularity.Box(m.Z, x1, x2))
	}
	moment := shear.Sub(boxes).Integrate()

	axialLoad := singularity.Macaulay(r.Nx, pin, -1)
	for _, f := range forces {
		axialLoad = axialLoad.Add(intensity(f.X, f.Interval))
	}
	axial := axialLoad.Integrate().Neg()

	torqueLoad := singularity.Macaulay(r.Mx, pin, -1)
	for _, m := range moments {
		torqueLoad = torqueLoad.Add(intensity(m.X, m.Interval))
	}
	torque := torqueLoad.Integrate().Neg()

	var d distributions
	d[Load] = w
	d[Shear] = shear
	d[Moment] = moment
	d[Axial] = axial
	d[Torque] = torque
	return d
}

// applyStresses derives σ(x) = N/A - M·y_max/I_zz and τ(x) = T·(torsion factor).
func applyStresses(d *distributions, props *section.Properties) {
	d[NormalStress] = d[Axial].Scale(props.AxialFactor()).Sub(d[Moment].Scale(props.BendingFactor()))
	d[ShearStress] = d[Torque].Scale(props.TorsionFactor())
}
