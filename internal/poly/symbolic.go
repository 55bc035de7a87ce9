package poly

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/njchilds90/gosymbol"
)

// Var is the only free symbol a load expression may contain.
const Var = "x"

var chunk = big.NewInt(1_000_000_000_000_000_000)

// Num converts r into an exact gosymbol number, including values whose
// numerator or denominator do not fit in an int64.
func Num(r *big.Rat) *gosymbol.Num {
	if r.Num().IsInt64() && r.Denom().IsInt64() {
		return gosymbol.F(r.Num().Int64(), r.Denom().Int64())
	}
	e := gosymbol.MulOf(intExpr(r.Num()), gosymbol.PowOf(intExpr(r.Denom()), gosymbol.N(-1)))
	return e.(*gosymbol.Num)
}

func intExpr(i *big.Int) gosymbol.Expr {
	if i.IsInt64() {
		return gosymbol.N(i.Int64())
	}
	q, m := new(big.Int).DivMod(i, chunk, new(big.Int))
	return gosymbol.AddOf(gosymbol.MulOf(intExpr(q), gosymbol.N(chunk.Int64())), gosymbol.N(m.Int64()))
}

// Expr returns p as a symbolic sum of c·x^k terms, highest power first.
func (p Poly) Expr() gosymbol.Expr {
	x := gosymbol.S(Var)
	terms := make([]gosymbol.Expr, 0, len(p.coefs))
	for k := len(p.coefs) - 1; k >= 0; k-- {
		if p.coefs[k].Sign() == 0 {
			continue
		}
		terms = append(terms, gosymbol.MulOf(Num(p.coefs[k]), gosymbol.PowOf(x, gosymbol.N(int64(k)))))
	}
	return gosymbol.AddOf(terms...)
}

// FromExpr expands e and collects its coefficients in x. It fails with
// ErrNotPolynomial when e has other symbols, functions, or non-integer or
// negative powers of x.
func FromExpr(e gosymbol.Expr) (Poly, error) {
	for name := range gosymbol.FreeSymbols(e) {
		if name != Var {
			return Poly{}, fmt.Errorf("%w: unknown symbol %q", ErrNotPolynomial, name)
		}
	}
	expanded := gosymbol.Expand(e)
	if err := checkTerms(expanded); err != nil {
		return Poly{}, err
	}

	coefs := gosymbol.PolyCoeffs(expanded, Var)
	deg := -1
	for k := range coefs {
		if k < 0 {
			return Poly{}, fmt.Errorf("%w: negative power of x", ErrNotPolynomial)
		}
		deg = max(deg, k)
	}
	cs := make([]*big.Rat, deg+1)
	for k, c := range coefs {
		n, ok := c.(*gosymbol.Num)
		if !ok {
			return Poly{}, fmt.Errorf("%w: term %s", ErrNotPolynomial, gosymbol.String(c))
		}
		cs[k] = n.Rat()
	}
	return New(cs...), nil
}

// checkTerms rejects function applications, which PolyCoeffs would drop.
func checkTerms(e gosymbol.Expr) error {
	switch v := e.(type) {
	case *gosymbol.Num, *gosymbol.Sym:
		return nil
	case *gosymbol.Add:
		for _, t := range v.Terms() {
			if err := checkTerms(t); err != nil {
				return err
			}
		}
		return nil
	case *gosymbol.Mul:
		for _, f := range v.Factors() {
			if err := checkTerms(f); err != nil {
				return err
			}
		}
		return nil
	case *gosymbol.Pow:
		if err := checkTerms(v.Base()); err != nil {
			return err
		}
		return checkTerms(v.ExpExpr())
	default:
		return fmt.Errorf("%w: %s", ErrNotPolynomial, gosymbol.String(e))
	}
}

// mustFromExpr is for results of closed operations on polynomials.
func mustFromExpr(e gosymbol.Expr) Poly {
	p, err := FromExpr(e)
	if err != nil {
		panic(fmt.Sprintf("poly: %v", err))
	}
	return p
}

// Mul returns p·q.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	return mustFromExpr(gosymbol.MulOf(p.Expr(), q.Expr()))
}

// Pow returns p^n for n >= 0.
func (p Poly) Pow(n int) Poly {
	out := Const(big.NewRat(1, 1))
	for i := 0; i < n; i++ {
		out = out.Mul(p)
	}
	return out
}

// Antiderivative returns the antiderivative of p with zero constant term.
func (p Poly) Antiderivative() Poly {
	if p.IsZero() {
		return Poly{}
	}
	anti, ok := gosymbol.Integrate(p.Expr(), Var)
	if !ok {
		panic("poly: no antiderivative for " + p.String())
	}
	return mustFromExpr(anti)
}

// Derivative returns dp/dx.
func (p Poly) Derivative() Poly {
	if p.Degree() < 1 {
		return Poly{}
	}
	return mustFromExpr(gosymbol.Diff(p.Expr(), Var))
}

// LaTeX renders p for typesetting, e.g. "2 x^{2} - \frac{1}{2}".
func (p Poly) LaTeX() string {
	return strings.ReplaceAll(gosymbol.LaTeX(p.Expr()), "+ -", "- ")
}
