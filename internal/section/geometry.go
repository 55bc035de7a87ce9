package section

import (
	"math"
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/poly"
)

// exactProperties keeps the constants as rationals so the stress expressions
// built from them stay exact.
type exactProperties struct {
	area, c1Web, c1Flange, ycm, ymax, izz, torsion *big.Rat
}

// Validate checks that every dimension is positive.
func (s ISection) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"flange_width", s.FlangeWidth},
		{"flange_thickness", s.FlangeThickness},
		{"web_height", s.WebHeight},
		{"web_thickness", s.WebThickness},
	}
	for _, d := range dims {
		if !(d.value > 0) || math.IsInf(d.value, 1) {
			return &GeometryError{Field: d.name, Value: d.value, Reason: "must be positive and finite"}
		}
	}
	return nil
}

// CalculateProperties computes area, centroid, extreme fiber distance, second
// moment of area and the torsion shape factors.
func (s ISection) CalculateProperties() (*Properties, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	F := poly.Rat(s.FlangeWidth)
	FT := poly.Rat(s.FlangeThickness)
	W := poly.Rat(s.WebHeight)
	WT := poly.Rat(s.WebThickness)

	flangeArea := mul(F, FT)
	webArea := mul(W, WT)
	area := add(flangeArea, webArea)

	// C1 = 1/3·(1 - 0.63·b/t)
	c1 := func(b, t *big.Rat) *big.Rat {
		ratio := new(big.Rat).Quo(b, t)
		v := new(big.Rat).Sub(big.NewRat(1, 1), mul(big.NewRat(63, 100), ratio))
		return mul(big.NewRat(1, 3), v)
	}
	c1Web := c1(W, WT)
	c1Flange := c1(F, FT)

	halfW := new(big.Rat).Quo(W, big.NewRat(2, 1))

	// web centroid at W/2, flange centroid at W
	ycm := new(big.Rat).Quo(add(mul(halfW, webArea), mul(W, flangeArea)), area)

	var ymax *big.Rat
	if ycm.Cmp(halfW) > 0 {
		ymax = new(big.Rat).Neg(ycm)
	} else {
		ymax = new(big.Rat).Sub(W, ycm)
	}

	// parallel-axis theorem over both rectangles
	twelve := big.NewRat(12, 1)
	dFlange := new(big.Rat).Sub(W, ycm)
	dWeb := new(big.Rat).Sub(halfW, ycm)
	izz := new(big.Rat).Quo(mul(F, mul(FT, mul(FT, FT))), twelve)
	izz.Add(izz, mul(flangeArea, mul(dFlange, dFlange)))
	izz.Add(izz, new(big.Rat).Quo(mul(WT, mul(W, mul(W, W))), twelve))
	izz.Add(izz, mul(webArea, mul(dWeb, dWeb)))

	if c1Web.Sign() == 0 {
		return nil, &GeometryError{Field: "web_height/web_thickness", Value: s.WebHeight / s.WebThickness, Reason: "web torsion factor is zero"}
	}
	if c1Flange.Sign() == 0 {
		return nil, &GeometryError{Field: "flange_width/flange_thickness", Value: s.FlangeWidth / s.FlangeThickness, Reason: "flange torsion factor is zero"}
	}
	if izz.Sign() <= 0 {
		f, _ := izz.Float64()
		return nil, &GeometryError{Field: "izz", Value: f, Reason: "second moment of area must be positive"}
	}

	web := new(big.Rat).Inv(mul(c1Web, mul(WT, mul(W, W))))
	flange := new(big.Rat).Inv(mul(c1Flange, mul(FT, mul(F, F))))
	torsion := add(web, flange)

	props := &Properties{
		exact: exactProperties{
			torsion:  torsion,
			area:     area,
			c1Web:    c1Web,
			c1Flange: c1Flange,
			ycm:      ycm,
			ymax:     ymax,
			izz:      izz,
		},
	}
	props.Area, _ = area.Float64()
	props.C1Web, _ = c1Web.Float64()
	props.C1Flange, _ = c1Flange.Float64()
	props.CentroidY, _ = ycm.Float64()
	props.YMax, _ = ymax.Float64()
	props.Izz, _ = izz.Float64()
	props.Torsion, _ = torsion.Float64()

	return props, nil
}

// AxialFactor returns 1/Area, the factor turning axial force into stress.
func (p *Properties) AxialFactor() *big.Rat {
	return new(big.Rat).Inv(p.exact.area)
}

// BendingFactor returns y_max/I_zz, the factor turning bending moment into
// extreme-fiber stress.
func (p *Properties) BendingFactor() *big.Rat {
	return new(big.Rat).Quo(p.exact.ymax, p.exact.izz)
}

// TorsionFactor returns 1/(C1w·WT·W²) + 1/(C1f·FT·F²), the factor turning
// torque into the maximum torsional shear stress.
func (p *Properties) TorsionFactor() *big.Rat {
	return new(big.Rat).Set(p.exact.torsion)
}

func mul(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Mul(a, b)
}

func add(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Add(a, b)
}
