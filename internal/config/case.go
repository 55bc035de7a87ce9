package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/section"
)

const (
	DefaultLength    = 10.0
	DefaultPointLoad = "-1000"
)

// Case is a beam problem as stored in a YAML or JSON file.
type Case struct {
	Name        string           `yaml:"name" json:"name"`
	Length      float64          `yaml:"length" json:"length"`
	LengthUnit  string           `yaml:"length_unit,omitempty" json:"length_unit,omitempty"`
	SectionUnit string           `yaml:"section_unit,omitempty" json:"section_unit,omitempty"`
	Section     section.ISection `yaml:"section" json:"section"`
	Supports    SupportsConfig   `yaml:"supports" json:"supports"`
	MomentMode  string           `yaml:"moment_mode,omitempty" json:"moment_mode,omitempty"`
	ForceLoads  []ForceLoad      `yaml:"force_loads,omitempty" json:"force_loads,omitempty"`
	MomentLoads []MomentLoad     `yaml:"moment_loads,omitempty" json:"moment_loads,omitempty"`
}

// SupportsConfig places the supports. A missing or negative roller makes the
// beam a cantilever fixed at the pin.
type SupportsConfig struct {
	Pin    float64  `yaml:"pin" json:"pin"`
	Roller *float64 `yaml:"roller,omitempty" json:"roller,omitempty"`
}

// ForceLoad is a lateral load entry. A missing or negative x2 makes it a
// point load at x1.
type ForceLoad struct {
	X        Expression `yaml:"x" json:"x"`
	Y        Expression `yaml:"y" json:"y"`
	X1       float64    `yaml:"x1" json:"x1"`
	X2       *float64   `yaml:"x2,omitempty" json:"x2,omitempty"`
	Category string     `yaml:"category,omitempty" json:"category,omitempty"`
}

// MomentLoad is a moment load entry with torque x and bending z.
type MomentLoad struct {
	X        Expression `yaml:"x" json:"x"`
	Z        Expression `yaml:"z" json:"z"`
	X1       float64    `yaml:"x1" json:"x1"`
	X2       *float64   `yaml:"x2,omitempty" json:"x2,omitempty"`
	Category string     `yaml:"category,omitempty" json:"category,omitempty"`
}

// Expression is a load expression in x. In JSON it may also be written as a
// bare number.
type Expression string

func (e *Expression) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Expression(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("load expression must be a string or a number: %s", data)
	}
	*e = Expression(f.String())
	return nil
}

func (e Expression) String() string {
	if strings.TrimSpace(string(e)) == "" {
		return "0"
	}
	return string(e)
}

// DefaultCase is a simply supported span with one midspan point load.
func DefaultCase() *Case {
	roller := DefaultLength
	return &Case{
		Name:       "example",
		Length:     DefaultLength,
		LengthUnit: "M",
		Section: section.ISection{
			FlangeWidth:     0.2,
			FlangeThickness: 0.02,
			WebHeight:       0.3,
			WebThickness:    0.01,
		},
		Supports:   SupportsConfig{Pin: 0, Roller: &roller},
		MomentMode: beam.MomentLegacy.String(),
		ForceLoads: []ForceLoad{
			{X: "0", Y: DefaultPointLoad, X1: DefaultLength / 2},
		},
	}
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads a case file. Files ending in .json are decoded as JSON, anything
// else as YAML.
func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Case{}
	if isJSON(path) {
		err = json.Unmarshal(data, c)
	} else {
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return c, nil
}

// Save writes c in the format its extension selects.
func Save(path string, c *Case) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build converts the case to metres and loads a beam builder with it.
func (c *Case) Build() (*beam.Builder, error) {
	toM := func(v float64) (float64, error) { return ToMetres(v, c.LengthUnit) }

	length, err := toM(c.Length)
	if err != nil {
		return nil, err
	}
	sec, err := c.sectionInMetres()
	if err != nil {
		return nil, err
	}
	pin, err := toM(c.Supports.Pin)
	if err != nil {
		return nil, err
	}
	supports := beam.Fixed(pin)
	if c.Supports.Roller != nil && *c.Supports.Roller >= 0 {
		roller, err := toM(*c.Supports.Roller)
		if err != nil {
			return nil, err
		}
		supports = beam.SimplySupported(pin, roller)
	}
	mode, err := beam.ParseMomentMode(c.MomentMode)
	if err != nil {
		return nil, err
	}

	b, err := beam.New(length, sec, supports, beam.WithMomentMode(mode))
	if err != nil {
		return nil, err
	}

	for i, l := range c.ForceLoads {
		iv, cat, err := c.loadPlacement(l.X1, l.X2, l.Category)
		if err != nil {
			return nil, fmt.Errorf("force load %d: %w", i+1, err)
		}
		if err := b.AddForceLoad(l.X.String(), l.Y.String(), iv, beam.WithCategory(cat)); err != nil {
			return nil, fmt.Errorf("force load %d: %w", i+1, err)
		}
	}
	for i, l := range c.MomentLoads {
		iv, cat, err := c.loadPlacement(l.X1, l.X2, l.Category)
		if err != nil {
			return nil, fmt.Errorf("moment load %d: %w", i+1, err)
		}
		if err := b.AddMomentLoad(l.X.String(), l.Z.String(), iv, beam.WithCategory(cat)); err != nil {
			return nil, fmt.Errorf("moment load %d: %w", i+1, err)
		}
	}
	return b, nil
}

func (c *Case) loadPlacement(x1 float64, x2 *float64, category string) (beam.Interval, nscp.Category, error) {
	cat, err := nscp.ParseCategory(category)
	if err != nil {
		return beam.Interval{}, "", err
	}
	start, err := ToMetres(x1, c.LengthUnit)
	if err != nil {
		return beam.Interval{}, "", err
	}
	if x2 == nil || *x2 < 0 {
		return beam.At(start), cat, nil
	}
	end, err := ToMetres(*x2, c.LengthUnit)
	if err != nil {
		return beam.Interval{}, "", err
	}
	return beam.Between(start, end), cat, nil
}

func (c *Case) sectionInMetres() (section.ISection, error) {
	out := c.Section
	for _, d := range []*float64{&out.FlangeWidth, &out.FlangeThickness, &out.WebHeight, &out.WebThickness} {
		v, err := ToMetres(*d, c.SectionUnit)
		if err != nil {
			return section.ISection{}, err
		}
		*d = v
	}
	return out, nil
}

// ParseForce reads a force load written as "fx,fy,x1[,x2[,category]]".
func ParseForce(s string) (ForceLoad, error) {
	a, b, x1, x2, cat, err := splitLoad(s)
	if err != nil {
		return ForceLoad{}, fmt.Errorf("force %q: %w", s, err)
	}
	return ForceLoad{X: a, Y: b, X1: x1, X2: x2, Category: cat}, nil
}

// ParseMoment reads a moment load written as "mx,mz,x1[,x2[,category]]".
func ParseMoment(s string) (MomentLoad, error) {
	a, b, x1, x2, cat, err := splitLoad(s)
	if err != nil {
		return MomentLoad{}, fmt.Errorf("moment %q: %w", s, err)
	}
	return MomentLoad{X: a, Z: b, X1: x1, X2: x2, Category: cat}, nil
}

func splitLoad(s string) (a, b Expression, x1 float64, x2 *float64, category string, err error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 || len(parts) > 5 {
		return "", "", 0, nil, "", fmt.Errorf("want 3 to 5 comma separated fields, got %d", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	x1, err = strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return "", "", 0, nil, "", fmt.Errorf("x1: %w", err)
	}
	if len(parts) >= 4 && parts[3] != "" {
		v, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return "", "", 0, nil, "", fmt.Errorf("x2: %w", err)
		}
		x2 = &v
	}
	if len(parts) == 5 {
		category = parts[4]
	}
	return Expression(parts[0]), Expression(parts[1]), x1, x2, category, nil
}
