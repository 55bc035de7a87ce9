// Package poly implements the load expression language: polynomials in x with
// exact rational coefficients.
//
// Loads are entered as strings such as "-10", "2*x^2 - 3x" or "(x-1)**2/4".
// Expressions are built and expanded with gosymbol; Poly keeps the collected
// coefficients so a distributed load can be re-expanded about any anchor and
// integrated without numerical error.
package poly

import (
	"math/big"
	"strconv"
	"strings"
)

// Poly is an immutable polynomial. coefs[k] multiplies x^k and the slice never
// carries trailing zeros, so the zero polynomial has no coefficients at all.
type Poly struct {
	coefs []*big.Rat
}

// Rat converts a float64 into the rational with the shortest decimal
// representation, so 0.1 becomes 1/10 rather than its binary expansion.
func Rat(f float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		// NaN and Inf have no rational form
		return new(big.Rat)
	}
	return r
}

// Const returns the constant polynomial c.
func Const(c *big.Rat) Poly {
	return New(c)
}

// New builds a polynomial from coefficients in ascending order of power.
func New(coefs ...*big.Rat) Poly {
	cs := make([]*big.Rat, len(coefs))
	for i, c := range coefs {
		if c == nil {
			cs[i] = new(big.Rat)
			continue
		}
		cs[i] = new(big.Rat).Set(c)
	}
	return Poly{coefs: trim(cs)}
}

// X returns the polynomial x.
func X() Poly {
	return New(new(big.Rat), big.NewRat(1, 1))
}

func trim(cs []*big.Rat) []*big.Rat {
	n := len(cs)
	for n > 0 && cs[n-1].Sign() == 0 {
		n--
	}
	return cs[:n]
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	return len(p.coefs) - 1
}

// IsZero reports whether p is identically zero.
func (p Poly) IsZero() bool {
	return len(p.coefs) == 0
}

// Coef returns a copy of the coefficient of x^k.
func (p Poly) Coef(k int) *big.Rat {
	if k < 0 || k >= len(p.coefs) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.coefs[k])
}

// Coefs returns copies of all coefficients in ascending order of power.
func (p Poly) Coefs() []*big.Rat {
	out := make([]*big.Rat, len(p.coefs))
	for i, c := range p.coefs {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := max(len(p.coefs), len(q.coefs))
	cs := make([]*big.Rat, n)
	for i := range cs {
		cs[i] = new(big.Rat).Add(p.Coef(i), q.Coef(i))
	}
	return Poly{coefs: trim(cs)}
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	return p.Add(q.Scale(big.NewRat(-1, 1)))
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	return p.Scale(big.NewRat(-1, 1))
}

// Scale returns c·p.
func (p Poly) Scale(c *big.Rat) Poly {
	cs := make([]*big.Rat, len(p.coefs))
	for i, a := range p.coefs {
		cs[i] = new(big.Rat).Mul(a, c)
	}
	return Poly{coefs: trim(cs)}
}

// EvalRat evaluates p at x exactly (Horner's scheme).
func (p Poly) EvalRat(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for k := len(p.coefs) - 1; k >= 0; k-- {
		acc.Mul(acc, x)
		acc.Add(acc, p.coefs[k])
	}
	return acc
}

// Eval evaluates p at x in floating point.
func (p Poly) Eval(x float64) float64 {
	var acc float64
	for k := len(p.coefs) - 1; k >= 0; k-- {
		c, _ := p.coefs[k].Float64()
		acc = acc*x + c
	}
	return acc
}

// Integral returns the definite integral of p over [a, b].
func (p Poly) Integral(a, b *big.Rat) *big.Rat {
	anti := p.Antiderivative()
	return new(big.Rat).Sub(anti.EvalRat(b), anti.EvalRat(a))
}

// Shift re-expands p about a: it returns c such that
// p(x) = Σ c[k]·(x-a)^k. The result has the same length as p's coefficients.
func (p Poly) Shift(a *big.Rat) []*big.Rat {
	n := len(p.coefs)
	out := make([]*big.Rat, n)
	for k := range out {
		out[k] = new(big.Rat)
	}
	binom := new(big.Int)
	tmp := new(big.Rat)
	apow := new(big.Rat)
	for j := 0; j < n; j++ {
		// p_j·x^j = p_j·((x-a)+a)^j = Σ_k C(j,k)·a^(j-k)·(x-a)^k
		for k := 0; k <= j; k++ {
			binom.Binomial(int64(j), int64(k))
			apow.SetInt64(1)
			for i := 0; i < j-k; i++ {
				apow.Mul(apow, a)
			}
			tmp.SetInt(binom)
			tmp.Mul(tmp, apow)
			tmp.Mul(tmp, p.coefs[j])
			out[k].Add(out[k], tmp)
		}
	}
	return out
}

// Equal reports whether p and q have identical coefficients.
func (p Poly) Equal(q Poly) bool {
	if len(p.coefs) != len(q.coefs) {
		return false
	}
	for i := range p.coefs {
		if p.coefs[i].Cmp(q.coefs[i]) != 0 {
			return false
		}
	}
	return true
}

// String renders p highest power first, e.g. "3*x^2 - x + 1/2".
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	first := true
	for k := len(p.coefs) - 1; k >= 0; k-- {
		c := p.coefs[k]
		if c.Sign() == 0 {
			continue
		}
		abs := new(big.Rat).Abs(c)
		switch {
		case first && c.Sign() < 0:
			sb.WriteString("-")
		case !first && c.Sign() < 0:
			sb.WriteString(" - ")
		case !first:
			sb.WriteString(" + ")
		}
		first = false

		unit := abs.Cmp(big.NewRat(1, 1)) == 0
		if !unit || k == 0 {
			sb.WriteString(abs.RatString())
		}
		if k == 0 {
			continue
		}
		if !unit {
			sb.WriteString("*")
		}
		sb.WriteString("x")
		if k > 1 {
			sb.WriteString("^")
			sb.WriteString(strconv.Itoa(k))
		}
	}
	return sb.String()
}
