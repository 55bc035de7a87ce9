package beam

import (
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/poly"
	"github.com/alexiusacademia/gobeam/internal/singularity"
)

// Interval is the stretch of span a load acts on. Start == End is a point load.
type Interval struct {
	Start float64
	End   float64
}

// At returns the interval of a point load at x.
func At(x float64) Interval {
	return Interval{Start: x, End: x}
}

// Between returns the interval of a distributed load on [x1, x2].
func Between(x1, x2 float64) Interval {
	return Interval{Start: x1, End: x2}
}

// IsPoint reports whether the interval denotes a concentrated load.
func (iv Interval) IsPoint() bool {
	return iv.Start == iv.End
}

func (iv Interval) validate(length float64) error {
	if !(iv.Start <= iv.End) {
		return ErrInvalidInterval
	}
	if iv.Start < 0 || iv.End > length {
		return ErrOutsideSpan
	}
	return nil
}

func (iv Interval) bounds() (*big.Rat, *big.Rat) {
	return poly.Rat(iv.Start), poly.Rat(iv.End)
}

// ForceLoad is a lateral load. X and Y are the axial and transverse
// components: intensities for a distributed load, constants (evaluated at
// Start) for a point load.
type ForceLoad struct {
	X, Y     poly.Poly
	Interval Interval
	Category nscp.Category
}

// MomentLoad is a moment load. X is the torque component and Z the bending
// component, with the same point/distributed convention as ForceLoad.
type MomentLoad struct {
	X, Z     poly.Poly
	Interval Interval
	Category nscp.Category
}

// resultant is the total a component contributes: its value for a point
// load, its integral over the interval otherwise.
func resultant(p poly.Poly, iv Interval) *big.Rat {
	x1, x2 := iv.bounds()
	if iv.IsPoint() {
		return p.EvalRat(x1)
	}
	return p.Integral(x1, x2)
}

// firstMoment is the moment of a component about position about.
func firstMoment(p poly.Poly, iv Interval, about *big.Rat) *big.Rat {
	x1, x2 := iv.bounds()
	arm := new(big.Rat).Sub(x1, about)
	if iv.IsPoint() {
		return arm.Mul(arm, p.EvalRat(x1))
	}
	// (x - about)·p(x)
	lever := poly.New(new(big.Rat).Neg(about), big.NewRat(1, 1))
	return lever.Mul(p).Integral(x1, x2)
}

// intensity is the generalized intensity of a component: an impulse at Start
// for a point load, a box function over the interval otherwise.
func intensity(p poly.Poly, iv Interval) singularity.Expr {
	x1, x2 := iv.bounds()
	if iv.IsPoint() {
		return singularity.Macaulay(p.EvalRat(x1), x1, -1)
	}
	return singularity.Box(p, x1, x2)
}
