package beam

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/alexiusacademia/gobeam/internal/singularity"
)

// Kind names one of the distributions of a solved beam.
type Kind int

const (
	Load         Kind = iota // w(x), transverse load intensity
	Shear                    // V(x)
	Moment                   // M(x), bending moment
	Axial                    // N(x), axial force
	Torque                   // T(x)
	NormalStress             // σ(x), extreme-fiber normal stress
	ShearStress              // τ(x), maximum torsional shear stress

	kindCount
)

var kindNames = [kindCount]string{"w", "V", "M", "N", "T", "sigma", "tau"}

var kindTitles = [kindCount]string{
	"Load intensity w(x)",
	"Shear force V(x)",
	"Bending moment M(x)",
	"Axial force N(x)",
	"Torque T(x)",
	"Normal stress σ(x)",
	"Torsional shear stress τ(x)",
}

// Kinds lists every distribution in build order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Title is a human readable label such as "Shear force V(x)".
func (k Kind) Title() string {
	if !k.valid() {
		return k.String()
	}
	return kindTitles[k]
}

// ParseKind maps a distribution name to its Kind. Short symbols (w, V, M, N,
// T, sigma, tau, σ, τ) and long names (load, shear, moment, axial, torque,
// normal, torsion) are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimSpace(s) {
	case "w", "load":
		return Load, nil
	case "V", "v", "shear":
		return Shear, nil
	case "M", "m", "moment", "bending":
		return Moment, nil
	case "N", "n", "axial":
		return Axial, nil
	case "T", "t", "torque":
		return Torque, nil
	case "sigma", "σ", "normal", "normal_stress":
		return NormalStress, nil
	case "tau", "τ", "torsion", "shear_stress":
		return ShearStress, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDistribution, s)
}

// Solution is a solved beam. It is immutable.
type Solution struct {
	length   float64
	section  section.ISection
	props    *section.Properties
	supports Supports
	mode     MomentMode

	forces  []ForceLoad
	moments []MomentLoad

	reactions Reactions
	dist      distributions
}

// Length returns the span length.
func (s *Solution) Length() float64 { return s.length }

// Section returns the cross-section.
func (s *Solution) Section() section.ISection { return s.section }

// Properties returns the derived section constants.
func (s *Solution) Properties() *section.Properties { return s.props }

// Supports returns the support layout.
func (s *Solution) Supports() Supports { return s.supports }

// MomentMode returns the moment-load treatment the solution was built with.
func (s *Solution) MomentMode() MomentMode { return s.mode }

// Forces returns the force loads the solution was built from.
func (s *Solution) Forces() []ForceLoad { return append([]ForceLoad(nil), s.forces...) }

// Moments returns the moment loads the solution was built from.
func (s *Solution) Moments() []MomentLoad { return append([]MomentLoad(nil), s.moments...) }

// Reactions returns the support reactions.
func (s *Solution) Reactions() Reactions { return s.reactions }

// Distribution returns the expression of kind k. Unknown kinds yield zero.
func (s *Solution) Distribution(k Kind) singularity.Expr {
	if !k.valid() {
		return singularity.Zero
	}
	return s.dist[k]
}

// Text returns the plain, re-parseable form of distribution k.
func (s *Solution) Text(k Kind) string {
	return s.Distribution(k).String()
}

// LaTeX returns distribution k for typesetting.
func (s *Solution) LaTeX(k Kind) string {
	return s.Distribution(k).LaTeX()
}

func (s *Solution) check(k Kind, x float64) error {
	if !k.valid() {
		return fmt.Errorf("%w: %s", ErrUnknownDistribution, k)
	}
	if math.IsNaN(x) || x < 0 || x > s.length {
		return fmt.Errorf("%w: x=%g, length=%g", ErrOutOfSpan, x, s.length)
	}
	return nil
}

// Evaluate returns distribution k at position x in [0, length].
func (s *Solution) Evaluate(k Kind, x float64) (float64, error) {
	if err := s.check(k, x); err != nil {
		return 0, err
	}
	return s.dist[k].Eval(x), nil
}

// EvaluateRat returns distribution k at position x exactly.
func (s *Solution) EvaluateRat(k Kind, x *big.Rat) (*big.Rat, error) {
	f, _ := x.Float64()
	if err := s.check(k, f); err != nil {
		return nil, err
	}
	return s.dist[k].EvalRat(x), nil
}

// Sample evaluates distribution k on n evenly spaced points over
// [0, fraction·length]. Stopping short of the far end keeps plots clear of
// the jumps the supports and end loads produce there.
func (s *Solution) Sample(k Kind, n int, fraction float64) (xs, ys []float64, err error) {
	if !k.valid() {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDistribution, k)
	}
	if n < 2 {
		return nil, nil, fmt.Errorf("beam: need at least 2 samples, got %d", n)
	}
	if !(fraction > 0 && fraction <= 1) {
		return nil, nil, fmt.Errorf("beam: span fraction %g outside (0, 1]", fraction)
	}
	xs = floats.Span(make([]float64, n), 0, fraction*s.length)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = s.dist[k].Eval(x)
	}
	return xs, ys, nil
}

// Extremum returns the sampled value of largest magnitude and its position.
func (s *Solution) Extremum(k Kind, n int, fraction float64) (value, at float64, err error) {
	xs, ys, err := s.Sample(k, n, fraction)
	if err != nil {
		return 0, 0, err
	}
	i := floats.MaxIdx(absAll(ys))
	return ys[i], xs[i], nil
}

func absAll(ys []float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = math.Abs(y)
	}
	return out
}

// Equilibrium returns the out-of-balance totals of reactions and loads.
func (s *Solution) Equilibrium() Residuals {
	return residuals(s.supports, s.forces, s.moments, s.reactions)
}

// Equal reports whether two solutions carry the same reactions and distributions.
func (s *Solution) Equal(o *Solution) bool {
	if s.length != o.length || s.reactions.Kind != o.reactions.Kind {
		return false
	}
	a, b := s.reactions.Exact(), o.reactions.Exact()
	for k, v := range a {
		if v.Cmp(b[k]) != 0 {
			return false
		}
	}
	for k := range s.dist {
		if !s.dist[k].Equal(o.dist[k]) {
			return false
		}
	}
	return true
}
