package section

import (
	"errors"
	"fmt"
)

// ISection is a symmetric I-shaped cross-section made of one flange and one web.
// The section is described in a local system where:
// - y-axis points upward, origin at the bottom of the web
// - the web spans y = 0..WebHeight
// - the flange is centred at y = WebHeight
type ISection struct {
	FlangeWidth     float64 `json:"flange_width" yaml:"flange_width"`         // F
	FlangeThickness float64 `json:"flange_thickness" yaml:"flange_thickness"` // FT
	WebHeight       float64 `json:"web_height" yaml:"web_height"`             // W
	WebThickness    float64 `json:"web_thickness" yaml:"web_thickness"`       // WT
}

// Properties holds the derived section constants.
type Properties struct {
	Area float64

	// Thin-walled open-section torsion shape factors
	C1Web    float64
	C1Flange float64

	CentroidY float64 // y_cm, from the bottom of the web
	YMax      float64 // signed distance to the extreme fiber
	Izz       float64 // second moment of area about the centroidal z-axis
	Torsion   float64 // shear stress per unit torque

	exact exactProperties
}

// ErrDegenerate is wrapped by every GeometryError.
var ErrDegenerate = errors.New("section: degenerate geometry")

// GeometryError reports a dimension or derived constant that would make the
// stress evaluation divide by zero.
type GeometryError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: %s=%g (%s)", ErrDegenerate, e.Field, e.Value, e.Reason)
}

func (e *GeometryError) Unwrap() error {
	return ErrDegenerate
}
