package config

import (
	"fmt"
	"strings"
)

// Length units accepted in case files.
const (
	Metre      = "M"
	Millimetre = "MM"
	Inch       = "IN"
	Foot       = "FT"
)

// ToMetres converts value from unit to metres. An empty unit means metres.
func ToMetres(value float64, unit string) (float64, error) {
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "", Metre:
		return value, nil
	case Millimetre:
		return value / 1000, nil
	case Inch:
		return value * 2.54 / 100, nil
	case Foot:
		return value / 3.281, nil
	}
	return 0, fmt.Errorf("unknown length unit %q (use M, MM, IN or FT)", unit)
}
