package nscp

import (
	"fmt"
	"strings"
)

// Category is the load type a beam load belongs to.
type Category string

const (
	Dead       Category = "D"  // Dead load
	Live       Category = "L"  // Live load
	Roof       Category = "Lr" // Roof live load
	Wind       Category = "W"  // Wind load
	Earthquake Category = "E"  // Earthquake load
	Rain       Category = "R"  // Rain load
)

// Categories lists every category in display order.
var Categories = []Category{Dead, Live, Roof, Wind, Earthquake, Rain}

// ParseCategory accepts the short code or the long name, case-insensitively.
// An empty string is a dead load.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "d", "dead":
		return Dead, nil
	case "l", "live":
		return Live, nil
	case "lr", "roof":
		return Roof, nil
	case "w", "wind":
		return Wind, nil
	case "e", "earthquake":
		return Earthquake, nil
	case "r", "rain":
		return Rain, nil
	}
	return "", fmt.Errorf("unknown load category %q (use D, L, Lr, W, E or R)", s)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
//
// Every "or" alternative of the code is its own entry (2a, 2b, ...) since
// factoring by category would otherwise apply both alternatives at once.
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2a",
		Description: "1.2D + 1.6L + 0.5Lr",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
	},
	{
		ID:          "2b",
		Description: "1.2D + 1.6L + 0.5R",
		Dead:        1.2,
		Live:        1.6,
		Rain:        0.5,
	},
	{
		ID:          "3a",
		Description: "1.2D + 1.6Lr + 1.0L",
		Dead:        1.2,
		Roof:        1.6,
		Live:        1.0,
	},
	{
		ID:          "3b",
		Description: "1.2D + 1.6Lr + 0.5W",
		Dead:        1.2,
		Roof:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "3c",
		Description: "1.2D + 1.6R + 1.0L",
		Dead:        1.2,
		Rain:        1.6,
		Live:        1.0,
	},
	{
		ID:          "3d",
		Description: "1.2D + 1.6R + 0.5W",
		Dead:        1.2,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4a",
		Description: "1.2D + 1.0W + 1.0L + 0.5Lr",
		Dead:        1.2,
		Wind:        1.0,
		Live:        1.0,
		Roof:        0.5,
	},
	{
		ID:          "4b",
		Description: "1.2D + 1.0W + 1.0L + 0.5R",
		Dead:        1.2,
		Wind:        1.0,
		Live:        1.0,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations covers gravity loads only.
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Unfactored is the identity combination: every load at its service value.
var Unfactored = LoadCombination{
	ID:          "0",
	Description: "1.0 (unfactored)",
	Dead:        1,
	Live:        1,
	Roof:        1,
	Wind:        1,
	Earthquake:  1,
	Rain:        1,
}

// Factor returns the load factor the combination applies to category c.
func (lc LoadCombination) Factor(c Category) float64 {
	switch c {
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	default:
		return lc.Dead
	}
}

// Find returns the combination with the given ID.
func Find(combinations []LoadCombination, id string) (LoadCombination, bool) {
	for _, combo := range combinations {
		if combo.ID == id {
			return combo, true
		}
	}
	return LoadCombination{}, false
}
