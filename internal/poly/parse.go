package poly

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/njchilds90/gosymbol"
)

var (
	// ErrSyntax indicates a malformed load expression.
	ErrSyntax = errors.New("poly: syntax error")

	// ErrNotPolynomial indicates a well-formed expression that is not a polynomial in x.
	ErrNotPolynomial = errors.New("poly: expression is not a polynomial in x")
)

// MaxExponent bounds integer exponents so a typo cannot blow up the term count.
const MaxExponent = 32

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Parse parses a polynomial expression in x into a gosymbol expression and
// collects its coefficients.
//
// Supported: decimal and scientific numbers, x, + - * /, ^ and ** with a
// non-negative integer exponent, parentheses, unary signs and implicit
// multiplication ("3x", "2(x+1)"). Division is only allowed by constants.
func Parse(s string) (Poly, error) {
	toks, err := tokenize(s)
	if err != nil {
		return Poly{}, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return Poly{}, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	e, err := p.expr()
	if err != nil {
		return Poly{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return Poly{}, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
	return FromExpr(e)
}

// MustParse is like Parse but panics on error. Intended for tests and literals.
func MustParse(s string) Poly {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func tokenize(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				i++
			}
			// exponent part, only when followed by a digit so "2e" stays an error
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				j := i + 1
				if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
					j++
				}
				if j < len(rs) && unicode.IsDigit(rs[j]) {
					for j < len(rs) && unicode.IsDigit(rs[j]) {
						j++
					}
					i = j
				}
			}
			toks = append(toks, token{kind: tokNum, text: string(rs[start:i]), pos: start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[start:i]), pos: start})
		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "^", pos: i})
			i += 2
		case strings.ContainsRune("+-*/^", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrSyntax, r, i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(rs)})
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(op string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == op
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (gosymbol.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.next().text
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			right = gosymbol.MulOf(gosymbol.N(-1), right)
		}
		left = gosymbol.AddOf(left, right)
	}
	return left, nil
}

// term := unary (('*' | '/') unary | implicit unary)*
func (p *parser) term() (gosymbol.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case p.isOp("*"):
			p.next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = gosymbol.MulOf(left, right)
		case p.isOp("/"):
			slash := p.next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			d, err := FromExpr(right)
			if err != nil {
				return nil, err
			}
			if d.Degree() > 0 {
				return nil, fmt.Errorf("%w: division by a non-constant at %d", ErrNotPolynomial, slash.pos)
			}
			if d.IsZero() {
				return nil, fmt.Errorf("%w: division by zero at %d", ErrSyntax, slash.pos)
			}
			left = gosymbol.MulOf(left, Num(new(big.Rat).Inv(d.Coef(0))))
		case t.kind == tokIdent || t.kind == tokLParen:
			right, err := p.power()
			if err != nil {
				return nil, err
			}
			left = gosymbol.MulOf(left, right)
		default:
			return left, nil
		}
	}
}

// unary := ('+' | '-') unary | power
func (p *parser) unary() (gosymbol.Expr, error) {
	if p.isOp("-") {
		p.next()
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		return gosymbol.MulOf(gosymbol.N(-1), v), nil
	}
	if p.isOp("+") {
		p.next()
		return p.unary()
	}
	return p.power()
}

// power := primary ('^' unary)?
//
// The base is collected into a polynomial before raising it, so the
// expansion never has to distribute a long product of sums.
func (p *parser) power() (gosymbol.Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	caret := p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	ep, err := FromExpr(exp)
	if err != nil {
		return nil, fmt.Errorf("exponent at %d: %w", caret.pos, err)
	}
	if ep.Degree() > 0 {
		return nil, fmt.Errorf("%w: exponent depends on x at %d", ErrNotPolynomial, caret.pos)
	}
	e := ep.Coef(0)
	if !e.IsInt() || e.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent %s is not a non-negative integer at %d", ErrNotPolynomial, e.RatString(), caret.pos)
	}
	n := e.Num()
	if n.Cmp(big.NewInt(MaxExponent)) > 0 {
		return nil, fmt.Errorf("%w: exponent %s exceeds %d at %d", ErrNotPolynomial, n, MaxExponent, caret.pos)
	}
	bp, err := FromExpr(base)
	if err != nil {
		return nil, err
	}
	return bp.Pow(int(n.Int64())).Expr(), nil
}

// primary := number | 'x' | '(' expr ')'
func (p *parser) primary() (gosymbol.Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		r, ok := new(big.Rat).SetString(t.text)
		if !ok {
			return nil, fmt.Errorf("%w: bad number %q at %d", ErrSyntax, t.text, t.pos)
		}
		return Num(r), nil
	case tokIdent:
		if t.text != Var {
			return nil, fmt.Errorf("%w: unknown symbol %q at %d", ErrNotPolynomial, t.text, t.pos)
		}
		return gosymbol.S(Var), nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: missing ')' at %d", ErrSyntax, closing.pos)
		}
		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
}
