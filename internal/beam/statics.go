package beam

import (
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/poly"
)

// Reactions are the support reactions found from global equilibrium.
//
// Nx, Ny, Mz and Mx are the totals every support layout needs: axial force,
// transverse force, moment about the pin and torque. For a cantilever they are
// the reactions of the fixed end. For a pin and roller the transverse total is
// split into Ny1 at the pin and Ny2 at the roller, and Mz is only the moment
// the roller has to balance.
type Reactions struct {
	Kind SupportKind

	Nx *big.Rat
	Ny *big.Rat
	Mz *big.Rat
	Mx *big.Rat

	Ny1 *big.Rat // pin+roller only
	Ny2 *big.Rat // pin+roller only
}

func solveReactions(s Supports, forces []ForceLoad, moments []MomentLoad) Reactions {
	pin := poly.Rat(s.Pin)

	nx, ny, mz, mx := new(big.Rat), new(big.Rat), new(big.Rat), new(big.Rat)
	for _, f := range forces {
		nx.Sub(nx, resultant(f.X, f.Interval))
		ny.Sub(ny, resultant(f.Y, f.Interval))
		mz.Sub(mz, firstMoment(f.Y, f.Interval, pin))
	}
	for _, m := range moments {
		mz.Sub(mz, resultant(m.Z, m.Interval))
		mx.Sub(mx, resultant(m.X, m.Interval))
	}

	r := Reactions{Kind: s.Kind(), Nx: nx, Ny: ny, Mz: mz, Mx: mx}
	if s.Kind() == PinRoller {
		// moment about the pin leaves the roller as the only unknown
		arm := new(big.Rat).Sub(poly.Rat(*s.Roller), pin)
		r.Ny2 = new(big.Rat).Quo(mz, arm)
		r.Ny1 = new(big.Rat).Sub(ny, r.Ny2)
	}
	return r
}

// Keys returns the reaction labels in display order.
func (r Reactions) Keys() []string {
	if r.Kind == PinRoller {
		return []string{"Nx", "Ny1", "Ny2", "Mx"}
	}
	return []string{"Nx", "Ny", "Mz", "Mx"}
}

// Exact returns the reactions keyed by label as exact rationals.
func (r Reactions) Exact() map[string]*big.Rat {
	if r.Kind == PinRoller {
		return map[string]*big.Rat{"Nx": r.Nx, "Ny1": r.Ny1, "Ny2": r.Ny2, "Mx": r.Mx}
	}
	return map[string]*big.Rat{"Nx": r.Nx, "Ny": r.Ny, "Mz": r.Mz, "Mx": r.Mx}
}

// Map returns the reactions keyed by label.
func (r Reactions) Map() map[string]float64 {
	out := make(map[string]float64, 4)
	for k, v := range r.Exact() {
		out[k], _ = v.Float64()
	}
	return out
}

// Residuals are the out-of-balance totals of reactions plus applied loads.
// Every field is zero for a solved beam.
type Residuals struct {
	ForceX  *big.Rat
	ForceY  *big.Rat
	MomentZ *big.Rat // about the pin
	TorqueX *big.Rat
}

// IsZero reports whether the beam is in equilibrium.
func (r Residuals) IsZero() bool {
	return r.ForceX.Sign() == 0 && r.ForceY.Sign() == 0 && r.MomentZ.Sign() == 0 && r.TorqueX.Sign() == 0
}

func residuals(s Supports, forces []ForceLoad, moments []MomentLoad, r Reactions) Residuals {
	pin := poly.Rat(s.Pin)
	res := Residuals{
		ForceX:  new(big.Rat).Set(r.Nx),
		TorqueX: new(big.Rat).Set(r.Mx),
	}
	if r.Kind == PinRoller {
		res.ForceY = new(big.Rat).Add(r.Ny1, r.Ny2)
		arm := new(big.Rat).Sub(poly.Rat(*s.Roller), pin)
		res.MomentZ = arm.Mul(arm, r.Ny2)
	} else {
		res.ForceY = new(big.Rat).Set(r.Ny)
		res.MomentZ = new(big.Rat).Set(r.Mz)
	}

	for _, f := range forces {
		res.ForceX.Add(res.ForceX, resultant(f.X, f.Interval))
		res.ForceY.Add(res.ForceY, resultant(f.Y, f.Interval))
		res.MomentZ.Add(res.MomentZ, firstMoment(f.Y, f.Interval, pin))
	}
	for _, m := range moments {
		res.MomentZ.Add(res.MomentZ, resultant(m.Z, m.Interval))
		res.TorqueX.Add(res.TorqueX, resultant(m.X, m.Interval))
	}
	return res
}
