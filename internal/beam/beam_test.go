package beam

import (
	"errors"
	"math"
	"math/big"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/poly"
	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/alexiusacademia/gobeam/internal/singularity"
)

var testSection = section.ISection{FlangeWidth: 2, FlangeThickness: 1, WebHeight: 4, WebThickness: 1}

func newBuilder(t *testing.T, length float64, s Supports, opts ...Option) *Builder {
	t.Helper()
	b, err := New(length, testSection, s, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func solve(t *testing.T, b *Builder) *Solution {
	t.Helper()
	sol, err := b.Calculate()
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return sol
}

func at(g *WithT, sol *Solution, k Kind, x float64) float64 {
	v, err := sol.Evaluate(k, x)
	g.Expect(err).NotTo(HaveOccurred())
	return v
}

func TestSimplySupportedMidspanLoad(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 10, SimplySupported(0, 10))
	g.Expect(b.AddForceLoad("0", "-100", At(5))).To(Succeed())
	sol := solve(t, b)

	r := sol.Reactions()
	g.Expect(r.Kind).To(Equal(PinRoller))
	g.Expect(r.Map()).To(Equal(map[string]float64{"Nx": 0, "Ny1": 50, "Ny2": 50, "Mx": 0}))
	g.Expect(r.Keys()).To(Equal([]string{"Nx", "Ny1", "Ny2", "Mx"}))

	g.Expect(at(g, sol, Shear, 0)).To(BeNumerically("~", 50, 1e-12))
	g.Expect(at(g, sol, Shear, 2.5)).To(BeNumerically("~", 50, 1e-12))
	g.Expect(at(g, sol, Shear, 5)).To(BeNumerically("~", -50, 1e-12))
	g.Expect(at(g, sol, Shear, 7.5)).To(BeNumerically("~", -50, 1e-12))

	g.Expect(at(g, sol, Moment, 0)).To(BeNumerically("~", 0, 1e-12))
	g.Expect(at(g, sol, Moment, 5)).To(BeNumerically("~", 250, 1e-9))
	g.Expect(at(g, sol, Moment, 10)).To(BeNumerically("~", 0, 1e-9))

	g.Expect(sol.Equilibrium().IsZero()).To(BeTrue())
}

func TestCantileverTipLoad(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 4, Fixed(0))
	g.Expect(b.AddForceLoad("0", "-50", At(4))).To(Succeed())
	sol := solve(t, b)

	r := sol.Reactions()
	g.Expect(r.Kind).To(Equal(Cantilever))
	g.Expect(r.Map()).To(Equal(map[string]float64{"Nx": 0, "Ny": 50, "Mz": 200, "Mx": 0}))

	for _, x := range []float64{0.5, 2, 3.9} {
		g.Expect(at(g, sol, Shear, x)).To(BeNumerically("~", 50, 1e-12))
	}
	g.Expect(at(g, sol, Moment, 0)).To(BeNumerically("~", -200, 1e-9))
	g.Expect(at(g, sol, Moment, 2)).To(BeNumerically("~", -100, 1e-9))
	g.Expect(at(g, sol, Moment, 4)).To(BeNumerically("~", 0, 1e-9))

	g.Expect(sol.Equilibrium().IsZero()).To(BeTrue())
}

func TestCantileverUniformLoad(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 4, Fixed(0))
	g.Expect(b.AddForceLoad("0", "-10", Between(0, 4))).To(Succeed())
	sol := solve(t, b)

	r := sol.Reactions()
	g.Expect(r.Ny.Cmp(big.NewRat(40, 1))).To(Equal(0))
	g.Expect(r.Mz.Cmp(big.NewRat(80, 1))).To(Equal(0))

	g.Expect(at(g, sol, Shear, 1)).To(BeNumerically("~", 30, 1e-12))
	g.Expect(at(g, sol, Shear, 2)).To(BeNumerically("~", 20, 1e-12))
	g.Expect(at(g, sol, Moment, 0)).To(BeNumerically("~", -80, 1e-9))
	g.Expect(at(g, sol, Moment, 2)).To(BeNumerically("~", -20, 1e-9))

	m4, err := sol.EvaluateRat(Moment, big.NewRat(4, 1))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m4.Sign()).To(Equal(0))
}

func TestOverhangingTipLoad(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 10, SimplySupported(0, 8))
	g.Expect(b.AddForceLoad("0", "-10", At(10))).To(Succeed())
	sol := solve(t, b)

	r := sol.Reactions()
	g.Expect(r.Ny2.Cmp(big.NewRat(25, 2))).To(Equal(0))
	g.Expect(r.Ny1.Cmp(big.NewRat(-5, 2))).To(Equal(0))

	g.Expect(at(g, sol, Moment, 8)).To(BeNumerically("~", -20, 1e-9))
	g.Expect(at(g, sol, Moment, 10)).To(BeNumerically("~", 0, 1e-9))
	g.Expect(sol.Equilibrium().IsZero()).To(BeTrue())
}

func TestLinearlyVaryingLoad(t *testing.T) {
	g := NewWithT(t)
	// triangular load rising to 6 at the free end
	b := newBuilder(t, 3, Fixed(0))
	g.Expect(b.AddForceLoad("0", "-2*x", Between(0, 3))).To(Succeed())
	sol := solve(t, b)

	r := sol.Reactions()
	g.Expect(r.Ny.Cmp(big.NewRat(9, 1))).To(Equal(0))
	g.Expect(r.Mz.Cmp(big.NewRat(18, 1))).To(Equal(0))

	// V(x) = 9 - x², M(x) = -18 + 9x - x³/3
	g.Expect(at(g, sol, Shear, 1)).To(BeNumerically("~", 8, 1e-12))
	g.Expect(at(g, sol, Moment, 1)).To(BeNumerically("~", -18+9-1.0/3, 1e-9))
	g.Expect(at(g, sol, Moment, 3)).To(BeNumerically("~", 0, 1e-9))
}

func TestDistributedMomentModes(t *testing.T) {
	tests := []struct {
		mode MomentMode
		tip  float64
	}{
		{MomentLegacy, -5},
		{MomentConsistent, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			g := NewWithT(t)
			b := newBuilder(t, 4, Fixed(0), WithMomentMode(tt.mode))
			g.Expect(b.AddMomentLoad("0", "5", Between(1, 3))).To(Succeed())
			sol := solve(t, b)

			g.Expect(sol.MomentMode()).To(Equal(tt.mode))
			g.Expect(sol.Reactions().Mz.Cmp(big.NewRat(-10, 1))).To(Equal(0))
			g.Expect(sol.Equilibrium().IsZero()).To(BeTrue())
			g.Expect(at(g, sol, Moment, 4)).To(BeNumerically("~", tt.tip, 1e-9))
		})
	}
}

func TestVaryingDistributedMomentModes(t *testing.T) {
	tests := []struct {
		mode   MomentMode
		shear2 float64
		mid    float64
		tip    float64
	}{
		// doublet z(x)·<x-1>^-2 carries -z'(1)·<x-1>^-1 with it
		{MomentLegacy, 1, 2.875, 2},
		{MomentConsistent, 0, 3.375, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			g := NewWithT(t)
			b := newBuilder(t, 4, Fixed(0), WithMomentMode(tt.mode))
			g.Expect(b.AddMomentLoad("0", "x", Between(1, 3))).To(Succeed())
			sol := solve(t, b)

			g.Expect(sol.Reactions().Mz.Cmp(big.NewRat(-4, 1))).To(Equal(0))
			g.Expect(at(g, sol, Shear, 2)).To(BeNumerically("~", tt.shear2, 1e-9))
			g.Expect(at(g, sol, Moment, 1.5)).To(BeNumerically("~", tt.mid, 1e-9))
			g.Expect(at(g, sol, Moment, 4)).To(BeNumerically("~", tt.tip, 1e-9))
		})
	}
}

func TestPinRollerDistributionsClose(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 6, SimplySupported(0, 6), WithMomentMode(MomentConsistent))
	g.Expect(b.AddForceLoad("1", "-x^2", Between(1, 4))).To(Succeed())
	g.Expect(b.AddMomentLoad("5", "12", At(3))).To(Succeed())
	g.Expect(b.AddMomentLoad("x", "0", Between(2, 5))).To(Succeed())
	sol := solve(t, b)

	exact := func(k Kind, x *big.Rat) *big.Rat {
		v, err := sol.EvaluateRat(k, x)
		g.Expect(err).NotTo(HaveOccurred())
		return v
	}

	// Ny2·6 = ∫1..4 x³ dx - 12
	r := sol.Reactions()
	g.Expect(r.Ny2.Cmp(big.NewRat(69, 8))).To(Equal(0))
	g.Expect(r.Ny1.Cmp(big.NewRat(99, 8))).To(Equal(0))

	g.Expect(exact(Shear, big.NewRat(2, 1)).Cmp(big.NewRat(241, 24))).To(Equal(0))
	g.Expect(exact(Moment, big.NewRat(1, 1)).Cmp(big.NewRat(99, 8))).To(Equal(0))
	g.Expect(exact(Axial, big.NewRat(2, 1)).Cmp(big.NewRat(2, 1))).To(Equal(0))
	g.Expect(exact(Torque, big.NewRat(1, 1)).Cmp(big.NewRat(31, 2))).To(Equal(0))

	// free of internal forces past the roller
	end := big.NewRat(6, 1)
	for _, k := range []Kind{Shear, Moment, Axial, Torque} {
		g.Expect(exact(k, end).Sign()).To(Equal(0), k.String())
	}
}

func TestPointMomentClosesInBothModes(t *testing.T) {
	for _, mode := range []MomentMode{MomentLegacy, MomentConsistent} {
		t.Run(mode.String(), func(t *testing.T) {
			g := NewWithT(t)
			b := newBuilder(t, 4, Fixed(0), WithMomentMode(mode))
			g.Expect(b.AddMomentLoad("0", "10", At(2))).To(Succeed())
			sol := solve(t, b)

			g.Expect(at(g, sol, Moment, 1)).To(BeNumerically("~", 10, 1e-9))
			g.Expect(at(g, sol, Moment, 3)).To(BeNumerically("~", 0, 1e-9))
			g.Expect(at(g, sol, Shear, 1)).To(BeNumerically("~", 0, 1e-12))
		})
	}
}

func TestAxialAndTorsion(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 4, Fixed(0))
	g.Expect(b.AddForceLoad("10", "0", At(4))).To(Succeed())
	g.Expect(b.AddMomentLoad("3", "0", At(2))).To(Succeed())
	sol := solve(t, b)

	r := sol.Reactions()
	g.Expect(r.Nx.Cmp(big.NewRat(-10, 1))).To(Equal(0))
	g.Expect(r.Mx.Cmp(big.NewRat(-3, 1))).To(Equal(0))

	g.Expect(at(g, sol, Axial, 2)).To(BeNumerically("~", 10, 1e-12))
	g.Expect(at(g, sol, Torque, 1)).To(BeNumerically("~", 3, 1e-12))
	g.Expect(at(g, sol, Torque, 3)).To(BeNumerically("~", 0, 1e-12))

	// no bending, so σ is N/A with A = 6
	sigma, err := sol.EvaluateRat(NormalStress, big.NewRat(2, 1))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sigma.Cmp(big.NewRat(5, 3))).To(Equal(0))

	g.Expect(at(g, sol, ShearStress, 1)).To(BeNumerically("~", 3*sol.Properties().Torsion, 1e-9))
	g.Expect(sol.Equilibrium().IsZero()).To(BeTrue())
}

func TestNormalStressCombinesAxialAndBending(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 4, Fixed(0))
	g.Expect(b.AddForceLoad("12", "-50", At(4))).To(Succeed())
	sol := solve(t, b)

	props := sol.Properties()
	for _, x := range []float64{0, 1, 2.5} {
		n := at(g, sol, Axial, x)
		m := at(g, sol, Moment, x)
		want := n/props.Area - m*props.YMax/props.Izz
		g.Expect(at(g, sol, NormalStress, x)).To(BeNumerically("~", want, 1e-9))
	}
}

func TestNoLoads(t *testing.T) {
	g := NewWithT(t)
	sol := solve(t, newBuilder(t, 5, SimplySupported(1, 4)))

	for _, v := range sol.Reactions().Map() {
		g.Expect(v).To(BeZero())
	}
	for _, k := range Kinds() {
		g.Expect(sol.Distribution(k).IsZero()).To(BeTrue(), k.String())
		g.Expect(sol.Text(k)).To(Equal("0"))
	}
}

func TestPointLoadExpressionIsEvaluatedAtPosition(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 10, SimplySupported(0, 10))
	g.Expect(b.AddForceLoad("0", "-20*x", At(5))).To(Succeed())
	sol := solve(t, b)
	g.Expect(sol.Reactions().Map()["Ny1"]).To(BeNumerically("~", 50, 1e-12))
}

func TestConstructionErrors(t *testing.T) {
	g := NewWithT(t)

	_, err := New(0, testSection, Fixed(0))
	var geo *section.GeometryError
	g.Expect(errors.As(err, &geo)).To(BeTrue())
	g.Expect(geo.Field).To(Equal("length"))

	_, err = New(10, section.ISection{FlangeWidth: 2, FlangeThickness: 1, WebHeight: 4}, Fixed(0))
	g.Expect(err).To(MatchError(section.ErrDegenerate))

	_, err = New(10, testSection, SimplySupported(2, 2))
	g.Expect(err).To(MatchError(ErrSupportsCoincide))
	var cfg *ConfigurationError
	g.Expect(errors.As(err, &cfg)).To(BeTrue())
	g.Expect(cfg.Pin).To(Equal(2.0))

	_, err = New(10, testSection, SimplySupported(0, 12))
	g.Expect(err).To(MatchError(ErrSupportOutsideSpan))

	_, err = New(10, testSection, Fixed(-1))
	g.Expect(err).To(MatchError(ErrSupportOutsideSpan))

	_, err = New(10, testSection, SimplySupported(0, math.NaN()))
	g.Expect(err).To(MatchError(ErrSupportOutsideSpan))

	_, err = New(10, testSection, SimplySupported(math.NaN(), 10))
	g.Expect(err).To(MatchError(ErrSupportOutsideSpan))

	_, err = New(10, testSection, Fixed(math.NaN()))
	g.Expect(err).To(MatchError(ErrSupportOutsideSpan))

	_, err = New(math.Inf(1), testSection, Fixed(0))
	g.Expect(err).To(MatchError(section.ErrDegenerate))

	_, err = (&Builder{}).Calculate()
	g.Expect(err).To(MatchError(ErrNotConfigured))
	g.Expect((&Builder{}).AddForceLoad("0", "1", At(0))).To(MatchError(ErrNotConfigured))
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		add  func(b *Builder) error
		want error
	}{
		{"reversed interval", func(b *Builder) error { return b.AddForceLoad("0", "-1", Between(3, 1)) }, ErrInvalidInterval},
		{"before start", func(b *Builder) error { return b.AddForceLoad("0", "-1", Between(-1, 2)) }, ErrOutsideSpan},
		{"past end", func(b *Builder) error { return b.AddMomentLoad("0", "1", At(11)) }, ErrOutsideSpan},
		{"bad syntax", func(b *Builder) error { return b.AddForceLoad("2 +", "-1", At(1)) }, poly.ErrSyntax},
		{"not polynomial", func(b *Builder) error { return b.AddMomentLoad("0", "sin(x)", At(1)) }, poly.ErrNotPolynomial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			b := newBuilder(t, 10, Fixed(0))
			err := tt.add(b)
			g.Expect(err).To(MatchError(tt.want))

			var verr *ValidationError
			g.Expect(errors.As(err, &verr)).To(BeTrue())
			g.Expect(b.Forces()).To(BeEmpty())
			g.Expect(b.Moments()).To(BeEmpty())
		})
	}
}

func TestCalculateFreezesAndIsIdempotent(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 10, SimplySupported(0, 10))
	g.Expect(b.AddForceLoad("0", "-3*x^2 + 1", Between(2, 7))).To(Succeed())
	g.Expect(b.AddMomentLoad("1", "4", At(6))).To(Succeed())

	first := solve(t, b)
	g.Expect(b.AddForceLoad("0", "-1", At(1))).To(MatchError(ErrFrozen))
	g.Expect(b.AddMomentLoad("0", "-1", At(1))).To(MatchError(ErrFrozen))

	second := solve(t, b)
	g.Expect(second.Equal(first)).To(BeTrue())
	g.Expect(first.Forces()).To(HaveLen(1))
	g.Expect(first.Moments()).To(HaveLen(1))
}

func TestEvaluateOutsideSpan(t *testing.T) {
	g := NewWithT(t)
	sol := solve(t, newBuilder(t, 10, Fixed(0)))

	for _, x := range []float64{-0.1, 10.1, math.NaN()} {
		_, err := sol.Evaluate(Moment, x)
		g.Expect(err).To(MatchError(ErrOutOfSpan))
	}
	_, err := sol.Evaluate(Kind(42), 1)
	g.Expect(err).To(MatchError(ErrUnknownDistribution))

	_, err = sol.Evaluate(Moment, 10)
	g.Expect(err).NotTo(HaveOccurred())
}

func TestTextParsesBackToSameDistribution(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 10, SimplySupported(1, 9))
	g.Expect(b.AddForceLoad("2", "-0.5*x^2", Between(0.5, 6))).To(Succeed())
	g.Expect(b.AddForceLoad("0", "-30", At(9.5))).To(Succeed())
	g.Expect(b.AddMomentLoad("0", "12", At(4))).To(Succeed())
	sol := solve(t, b)

	for _, k := range Kinds() {
		back, err := singularity.Parse(sol.Text(k))
		g.Expect(err).NotTo(HaveOccurred(), k.String())
		g.Expect(back.Equal(sol.Distribution(k))).To(BeTrue(), k.String())
		for _, x := range []float64{0, 2.25, 5, 9.75} {
			g.Expect(back.Eval(x)).To(BeNumerically("~", at(g, sol, k, x), 1e-9))
		}
	}
	g.Expect(sol.LaTeX(Moment)).To(ContainSubstring(`\left\langle`))
	g.Expect(sol.Equilibrium().IsZero()).To(BeTrue())
}

func TestSample(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 10, SimplySupported(0, 10))
	g.Expect(b.AddForceLoad("0", "-100", At(5))).To(Succeed())
	sol := solve(t, b)

	xs, ys, err := sol.Sample(Moment, 5, 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(xs).To(Equal([]float64{0, 2.5, 5, 7.5, 10}))
	g.Expect(ys[2]).To(BeNumerically("~", 250, 1e-9))

	xs, _, err = sol.Sample(Shear, 100, 0.99)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(xs).To(HaveLen(100))
	g.Expect(xs[99]).To(BeNumerically("~", 9.9, 1e-12))

	_, _, err = sol.Sample(Shear, 1, 1)
	g.Expect(err).To(HaveOccurred())
	_, _, err = sol.Sample(Shear, 10, 0)
	g.Expect(err).To(HaveOccurred())

	m, x, err := sol.Extremum(Moment, 5, 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m).To(BeNumerically("~", 250, 1e-9))
	g.Expect(x).To(Equal(5.0))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"w", Load},
		{"V", Shear},
		{"moment", Moment},
		{"N", Axial},
		{"T", Torque},
		{"sigma", NormalStress},
		{"σ", NormalStress},
		{"tau", ShearStress},
		{"τ", ShearStress},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g := NewWithT(t)
			k, err := ParseKind(tt.in)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(k).To(Equal(tt.want))
		})
	}

	_, err := ParseKind("deflection")
	NewWithT(t).Expect(err).To(MatchError(ErrUnknownDistribution))
}

func TestParseMomentMode(t *testing.T) {
	g := NewWithT(t)
	m, err := ParseMomentMode("")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m).To(Equal(MomentLegacy))

	m, err = ParseMomentMode("Consistent")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(m).To(Equal(MomentConsistent))

	_, err = ParseMomentMode("exact")
	g.Expect(err).To(HaveOccurred())
}

func TestSolveCombinations(t *testing.T) {
	g := NewWithT(t)
	b := newBuilder(t, 4, Fixed(0))
	g.Expect(b.AddForceLoad("0", "-50", At(4))).To(Succeed())
	g.Expect(b.AddForceLoad("0", "-50", At(4), WithCategory(nscp.Live))).To(Succeed())

	combos := []nscp.LoadCombination{
		{ID: "a", Description: "1.4D", Dead: 1.4},
		{ID: "b", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
	}
	results, governing, err := SolveCombinations(b, combos, 50, 0.99)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(2))
	g.Expect(governing).To(Equal(1))

	g.Expect(results[0].MaxMoment).To(BeNumerically("~", -280, 1e-9))
	g.Expect(results[1].MaxMoment).To(BeNumerically("~", -560, 1e-9))
	g.Expect(results[1].At).To(Equal(0.0))
	g.Expect(results[1].Solution.Equilibrium().IsZero()).To(BeTrue())

	// the source builder is still open for loads
	g.Expect(b.AddForceLoad("0", "-1", At(1))).To(Succeed())

	_, _, err = SolveCombinations(b, nil, 50, 0.99)
	g.Expect(err).To(HaveOccurred())
}
