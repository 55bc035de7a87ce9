// Package singularity implements Macaulay (singularity) function algebra.
//
// A Term c·<x-a>^n is zero for x < a. For n >= 0 it equals c·(x-a)^n once
// x >= a. Negative orders are concentrated kernels located at a: n = -1 is a
// unit impulse (concentrated force) and n = -2 a unit doublet (concentrated
// moment). Integration raises the order by one, so point loads, distributed
// loads and support reactions can be summed into one Expr and integrated
// termwise into shear, moment, axial force and torque.
//
// Coefficients and anchors are exact rationals; evaluation is available both
// exactly and in floating point.
package singularity

import (
	"math"
	"math/big"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/poly"
)

// Kind classifies a term by its order.
type Kind int

const (
	Power         Kind = iota // n >= 1
	Step                      // n == 0
	Impulse                   // n == -1
	Doublet                   // n == -2
	HigherImpulse             // n <= -3
)

// KindOf returns the variant for order n.
func KindOf(n int) Kind {
	switch {
	case n >= 1:
		return Power
	case n == 0:
		return Step
	case n == -1:
		return Impulse
	case n == -2:
		return Doublet
	default:
		return HigherImpulse
	}
}

func (k Kind) String() string {
	switch k {
	case Power:
		return "power"
	case Step:
		return "step"
	case Impulse:
		return "impulse"
	case Doublet:
		return "doublet"
	default:
		return "higher impulse"
	}
}

// Term is Coef·<x-Anchor>^Order.
type Term struct {
	Coef   *big.Rat
	Anchor *big.Rat
	Order  int
}

// Kind returns the variant of t.
func (t Term) Kind() Kind {
	return KindOf(t.Order)
}

// Integrate returns the antiderivative of t that vanishes for x < Anchor.
func (t Term) Integrate() Term {
	out := Term{Coef: new(big.Rat).Set(t.Coef), Anchor: new(big.Rat).Set(t.Anchor), Order: t.Order + 1}
	if t.Order >= 0 {
		out.Coef.Quo(out.Coef, big.NewRat(int64(t.Order+1), 1))
	}
	return out
}

// EvalRat evaluates t at x exactly. Concentrated kernels evaluate to zero.
func (t Term) EvalRat(x *big.Rat) *big.Rat {
	if t.Order < 0 || x.Cmp(t.Anchor) < 0 {
		return new(big.Rat)
	}
	d := new(big.Rat).Sub(x, t.Anchor)
	v := new(big.Rat).Set(t.Coef)
	for i := 0; i < t.Order; i++ {
		v.Mul(v, d)
	}
	return v
}

// Eval evaluates t at x in floating point.
func (t Term) Eval(x float64) float64 {
	a, _ := t.Anchor.Float64()
	if t.Order < 0 || x < a {
		return 0
	}
	c, _ := t.Coef.Float64()
	if t.Order == 0 {
		return c
	}
	return c * math.Pow(x-a, float64(t.Order))
}

func (t Term) clone() Term {
	return Term{Coef: new(big.Rat).Set(t.Coef), Anchor: new(big.Rat).Set(t.Anchor), Order: t.Order}
}

// Expr is an immutable, normalized sum of terms: like terms (same anchor and
// order) are combined, zero terms dropped, and the rest sorted by anchor then
// by descending order.
type Expr struct {
	terms []Term
}

// Zero is the empty sum.
var Zero = Expr{}

// New returns the normalized sum of terms.
func New(terms ...Term) Expr {
	return normalize(terms)
}

// Macaulay returns the single-term expression c·<x-a>^n.
func Macaulay(c, a *big.Rat, n int) Expr {
	return New(Term{Coef: c, Anchor: a, Order: n})
}

// Box returns p(x)·(<x-a>^0 - <x-b>^0): p active on [a, b) and zero elsewhere.
// p is re-expanded about each end so the result is exact.
func Box(p poly.Poly, a, b *big.Rat) Expr {
	if a.Cmp(b) == 0 || p.IsZero() {
		return Zero
	}
	var terms []Term
	for k, c := range p.Shift(a) {
		terms = append(terms, Term{Coef: c, Anchor: a, Order: k})
	}
	for k, c := range p.Shift(b) {
		terms = append(terms, Term{Coef: new(big.Rat).Neg(c), Anchor: b, Order: k})
	}
	return normalize(terms)
}

func normalize(in []Term) Expr {
	type key struct {
		anchor string
		order  int
	}
	index := make(map[key]int)
	var out []Term
	for _, t := range in {
		if t.Coef == nil || t.Anchor == nil || t.Coef.Sign() == 0 {
			continue
		}
		k := key{t.Anchor.RatString(), t.Order}
		if i, ok := index[k]; ok {
			out[i].Coef.Add(out[i].Coef, t.Coef)
			continue
		}
		index[k] = len(out)
		out = append(out, t.clone())
	}

	kept := out[:0]
	for _, t := range out {
		if t.Coef.Sign() != 0 {
			kept = append(kept, t)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if c := kept[i].Anchor.Cmp(kept[j].Anchor); c != 0 {
			return c < 0
		}
		return kept[i].Order > kept[j].Order
	})
	if len(kept) == 0 {
		return Zero
	}
	return Expr{terms: kept}
}

// Terms returns a copy of the terms of e.
func (e Expr) Terms() []Term {
	out := make([]Term, len(e.terms))
	for i, t := range e.terms {
		out[i] = t.clone()
	}
	return out
}

// Len returns the number of terms.
func (e Expr) Len() int {
	return len(e.terms)
}

// IsZero reports whether e has no terms.
func (e Expr) IsZero() bool {
	return len(e.terms) == 0
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr {
	all := make([]Term, 0, len(e.terms)+len(o.terms))
	all = append(all, e.terms...)
	all = append(all, o.terms...)
	return normalize(all)
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Neg())
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	return e.Scale(big.NewRat(-1, 1))
}

// Scale returns c·e.
func (e Expr) Scale(c *big.Rat) Expr {
	out := make([]Term, len(e.terms))
	for i, t := range e.terms {
		out[i] = t.clone()
		out[i].Coef.Mul(out[i].Coef, c)
	}
	return normalize(out)
}

// Integrate integrates e termwise. No integration constant is added: every
// term is zero to the left of its anchor.
func (e Expr) Integrate() Expr {
	out := make([]Term, len(e.terms))
	for i, t := range e.terms {
		out[i] = t.Integrate()
	}
	return normalize(out)
}

// EvalRat evaluates e at x exactly.
func (e Expr) EvalRat(x *big.Rat) *big.Rat {
	sum := new(big.Rat)
	for _, t := range e.terms {
		sum.Add(sum, t.EvalRat(x))
	}
	return sum
}

// Eval evaluates e at x in floating point.
func (e Expr) Eval(x float64) float64 {
	var sum float64
	for _, t := range e.terms {
		sum += t.Eval(x)
	}
	return sum
}

// Sum returns the sum of the coefficients of all terms of kind k. For impulse
// terms this is the net concentrated force the expression carries.
func (e Expr) Sum(k Kind) *big.Rat {
	sum := new(big.Rat)
	for _, t := range e.terms {
		if t.Kind() == k {
			sum.Add(sum, t.Coef)
		}
	}
	return sum
}

// Equal reports whether e and o are the same normalized sum.
func (e Expr) Equal(o Expr) bool {
	if len(e.terms) != len(o.terms) {
		return false
	}
	for i := range e.terms {
		a, b := e.terms[i], o.terms[i]
		if a.Order != b.Order || a.Anchor.Cmp(b.Anchor) != 0 || a.Coef.Cmp(b.Coef) != 0 {
			return false
		}
	}
	return true
}
