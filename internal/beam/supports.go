package beam

// SupportKind is one of the two admissible support topologies.
type SupportKind int

const (
	// Cantilever is a single fixed support at the pin position.
	Cantilever SupportKind = iota
	// PinRoller is a pin plus a roller: a simply supported span, possibly with overhangs.
	PinRoller
)

func (k SupportKind) String() string {
	if k == PinRoller {
		return "pin+roller"
	}
	return "cantilever"
}

// Supports places the supports along the span. A nil Roller makes the beam a
// cantilever fixed at Pin.
type Supports struct {
	Pin    float64
	Roller *float64
}

// Fixed returns a cantilever support at x.
func Fixed(x float64) Supports {
	return Supports{Pin: x}
}

// SimplySupported returns a pin at pin and a roller at roller.
func SimplySupported(pin, roller float64) Supports {
	return Supports{Pin: pin, Roller: &roller}
}

// Kind reports the support topology.
func (s Supports) Kind() SupportKind {
	if s.Roller == nil {
		return Cantilever
	}
	return PinRoller
}

// Validate checks the supports against a span of the given length.
func (s Supports) Validate(length float64) error {
	roller := s.Pin
	if s.Roller != nil {
		roller = *s.Roller
	}
	if s.Roller != nil && *s.Roller == s.Pin {
		return &ConfigurationError{Pin: s.Pin, Roller: roller, Wrapped: ErrSupportsCoincide}
	}
	if !inSpan(s.Pin, length) || !inSpan(roller, length) {
		return &ConfigurationError{Pin: s.Pin, Roller: roller, Wrapped: ErrSupportOutsideSpan}
	}
	return nil
}

// inSpan is false for NaN positions.
func inSpan(x, length float64) bool {
	return x >= 0 && x <= length
}
