package singularity

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ErrSyntax indicates a malformed plain-text expression.
var ErrSyntax = errors.New("singularity: syntax error")

// String renders e in plain form, e.g. "50*<x - 0>^0 - 100*<x - 5>^0".
// Coefficients and anchors are exact rationals, so Parse(e.String()) equals e.
func (e Expr) String() string {
	if e.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range e.terms {
		abs := new(big.Rat).Abs(t.Coef)
		switch {
		case i == 0 && t.Coef.Sign() < 0:
			sb.WriteString("-")
		case i > 0 && t.Coef.Sign() < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%s*<x%s>^%d", abs.RatString(), anchorText(t.Anchor, (*big.Rat).RatString), t.Order)
	}
	return sb.String()
}

// LaTeX renders e for typesetting, with decimal coefficients and anchors.
func (e Expr) LaTeX() string {
	if e.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range e.terms {
		switch {
		case i == 0 && t.Coef.Sign() < 0:
			sb.WriteString("- ")
		case i > 0 && t.Coef.Sign() < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		abs := new(big.Rat).Abs(t.Coef)
		if abs.Cmp(big.NewRat(1, 1)) != 0 {
			sb.WriteString(decimal(abs))
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, `\left\langle x%s \right\rangle^{%d}`, anchorText(t.Anchor, decimal), t.Order)
	}
	return sb.String()
}

func anchorText(a *big.Rat, format func(*big.Rat) string) string {
	if a.Sign() < 0 {
		return " + " + format(new(big.Rat).Abs(a))
	}
	return " - " + format(a)
}

func decimal(r *big.Rat) string {
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'g', 6, 64)
}

var termPattern = regexp.MustCompile(`^\s*([+-]?)\s*(\d+(?:/\d+)?)\s*\*\s*<\s*x\s*([+-])\s*(\d+(?:/\d+)?)\s*>\s*\^\s*(-?\d+)`)

// Parse reads the plain form produced by String.
func Parse(s string) (Expr, error) {
	if strings.TrimSpace(s) == "0" {
		return Zero, nil
	}
	var terms []Term
	rest := s
	for strings.TrimSpace(rest) != "" {
		m := termPattern.FindStringSubmatch(rest)
		if m == nil {
			return Zero, fmt.Errorf("%w: cannot read term at %q", ErrSyntax, strings.TrimSpace(rest))
		}
		if len(terms) > 0 && m[1] == "" {
			return Zero, fmt.Errorf("%w: missing sign before %q", ErrSyntax, strings.TrimSpace(m[0]))
		}
		coef, ok := new(big.Rat).SetString(m[2])
		if !ok {
			return Zero, fmt.Errorf("%w: bad coefficient %q", ErrSyntax, m[2])
		}
		if m[1] == "-" {
			coef.Neg(coef)
		}
		anchor, ok := new(big.Rat).SetString(m[4])
		if !ok {
			return Zero, fmt.Errorf("%w: bad anchor %q", ErrSyntax, m[4])
		}
		if m[3] == "+" {
			anchor.Neg(anchor)
		}
		order, err := strconv.Atoi(m[5])
		if err != nil {
			return Zero, fmt.Errorf("%w: bad order %q", ErrSyntax, m[5])
		}
		terms = append(terms, Term{Coef: coef, Anchor: anchor, Order: order})
		rest = rest[len(m[0]):]
	}
	if len(terms) == 0 {
		return Zero, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	return New(terms...), nil
}
