// Package beam solves a single straight beam under point and distributed
// loads.
//
// A Builder collects loads for a fixed geometry and support layout. Calculate
// freezes the builder and returns an immutable Solution holding the reactions
// and the load, shear, moment, axial, torque and stress distributions, each as
// one singularity expression valid over the whole span.
//
// Builders are not safe for concurrent use. Solutions are read-only and may be
// shared freely.
package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/poly"
	"github.com/alexiusacademia/gobeam/internal/section"
)

// Builder accumulates loads before a beam is solved.
type Builder struct {
	length   float64
	section  section.ISection
	props    *section.Properties
	supports Supports
	mode     MomentMode

	forces  []ForceLoad
	moments []MomentLoad
	frozen  bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithMomentMode selects how distributed moment loads enter the distributions.
func WithMomentMode(m MomentMode) Option {
	return func(b *Builder) {
		b.mode = m
	}
}

// LoadOption configures a single load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	category nscp.Category
}

// WithCategory tags a load with its NSCP load category. Untagged loads are dead loads.
func WithCategory(c nscp.Category) LoadOption {
	return func(o *loadOptions) {
		o.category = c
	}
}

// New validates the geometry and supports and returns an empty Builder.
func New(length float64, sec section.ISection, supports Supports, opts ...Option) (*Builder, error) {
	if !(length > 0) || math.IsInf(length, 1) {
		return nil, &section.GeometryError{Field: "length", Value: length, Reason: "must be positive and finite"}
	}
	props, err := sec.CalculateProperties()
	if err != nil {
		return nil, err
	}
	if err := supports.Validate(length); err != nil {
		return nil, err
	}

	b := &Builder{
		length:   length,
		section:  sec,
		props:    props,
		supports: supports,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Length returns the span length.
func (b *Builder) Length() float64 { return b.length }

// Supports returns the support layout.
func (b *Builder) Supports() Supports { return b.supports }

// Forces returns the force loads added so far.
func (b *Builder) Forces() []ForceLoad {
	return append([]ForceLoad(nil), b.forces...)
}

// Moments returns the moment loads added so far.
func (b *Builder) Moments() []MomentLoad {
	return append([]MomentLoad(nil), b.moments...)
}

// AddForceLoad appends a lateral load with axial component fx and transverse
// component fy, both polynomials in x.
func (b *Builder) AddForceLoad(fx, fy string, iv Interval, opts ...LoadOption) error {
	x, y, o, err := b.prepare("force", fx, fy, iv, opts)
	if err != nil {
		return err
	}
	b.forces = append(b.forces, ForceLoad{X: x, Y: y, Interval: iv, Category: o.category})
	return nil
}

// AddMomentLoad appends a moment load with torque component mx and bending
// component mz, both polynomials in x.
func (b *Builder) AddMomentLoad(mx, mz string, iv Interval, opts ...LoadOption) error {
	x, z, o, err := b.prepare("moment", mx, mz, iv, opts)
	if err != nil {
		return err
	}
	b.moments = append(b.moments, MomentLoad{X: x, Z: z, Interval: iv, Category: o.category})
	return nil
}

func (b *Builder) prepare(kind, first, second string, iv Interval, opts []LoadOption) (poly.Poly, poly.Poly, loadOptions, error) {
	o := loadOptions{category: nscp.Dead}
	for _, opt := range opts {
		opt(&o)
	}
	if b.props == nil {
		return poly.Poly{}, poly.Poly{}, o, ErrNotConfigured
	}
	if b.frozen {
		return poly.Poly{}, poly.Poly{}, o, ErrFrozen
	}
	if err := iv.validate(b.length); err != nil {
		return poly.Poly{}, poly.Poly{}, o, &ValidationError{Load: kind, X1: iv.Start, X2: iv.End, Wrapped: err}
	}
	p, err := poly.Parse(first)
	if err != nil {
		return poly.Poly{}, poly.Poly{}, o, &ValidationError{Load: kind, X1: iv.Start, X2: iv.End, Wrapped: fmt.Errorf("component %q: %w", first, err)}
	}
	q, err := poly.Parse(second)
	if err != nil {
		return poly.Poly{}, poly.Poly{}, o, &ValidationError{Load: kind, X1: iv.Start, X2: iv.End, Wrapped: fmt.Errorf("component %q: %w", second, err)}
	}
	return p, q, o, nil
}

// Calculate freezes the loads and solves the beam: reactions first, then the
// distributions, then the stresses. Calling it again returns an equal Solution.
func (b *Builder) Calculate() (*Solution, error) {
	if b.props == nil {
		return nil, ErrNotConfigured
	}
	b.frozen = true

	reactions := solveReactions(b.supports, b.forces, b.moments)
	dist := buildDistributions(b.supports, b.forces, b.moments, reactions, b.mode)
	applyStresses(&dist, b.props)

	return &Solution{
		length:    b.length,
		section:   b.section,
		props:     b.props,
		supports:  b.supports,
		mode:      b.mode,
		forces:    b.Forces(),
		moments:   b.Moments(),
		reactions: reactions,
		dist:      dist,
	}, nil
}

// Factored returns a new, unfrozen Builder with every load scaled by the
// factor the combination assigns to the load's category.
func (b *Builder) Factored(combo nscp.LoadCombination) *Builder {
	out := &Builder{
		length:   b.length,
		section:  b.section,
		props:    b.props,
		supports: b.supports,
		mode:     b.mode,
	}
	for _, f := range b.forces {
		k := poly.Rat(combo.Factor(f.Category))
		out.forces = append(out.forces, ForceLoad{X: f.X.Scale(k), Y: f.Y.Scale(k), Interval: f.Interval, Category: f.Category})
	}
	for _, m := range b.moments {
		k := poly.Rat(combo.Factor(m.Category))
		out.moments = append(out.moments, MomentLoad{X: m.X.Scale(k), Z: m.Z.Scale(k), Interval: m.Interval, Category: m.Category})
	}
	return out
}
