// Package model assembles latent Gaussian model specifications from named
// components and hands them, together with an observation spec, to an
// external inference engine. The package defines structure only; the
// numerical fitting lives behind the InferenceEngine interface.
package model

import (
	"fmt"

	"github.com/spatialfield/fmesher/projector"
)

// Kind identifies the role of a model component.
type Kind uint8

const (
	Intercept Kind = iota
	Covariate
	Field
	ZeroInflation
)

func (k Kind) String() string {
	switch k {
	case Intercept:
		return "Intercept"
	case Covariate:
		return "Covariate"
	case Field:
		return "Field"
	case ZeroInflation:
		return "ZeroInflation"
	}
	return "Unknown"
}

// Matern holds the prior parameters of a Matern-type field, passed to the
// engine verbatim.
type Matern struct {
	// Range is the prior spatial correlation range.
	Range float64
	// Sigma is the prior marginal standard deviation.
	Sigma float64
	// Alpha selects the SPDE smoothness order. Zero defaults to 2.
	Alpha float64
	// IntegrateToZero constrains the field to integrate to zero over the
	// mesh domain.
	IntegrateToZero bool
}

// Component is one named term of the linear predictor.
type Component struct {
	Name   string
	Kind   Kind
	Values []float64 // covariate values, one per observation
	Mesh   projector.Mesh
	Proj   *projector.Projector
	Prior  Matern
	// Family names the zero-inflation mixture for ZeroInflation components,
	// e.g. "pointmass".
	Family string
}

// Spec is an immutable, ordered component list with unique names.
type Spec struct {
	components []Component
}

// Components returns the components in the order they were added.
func (s *Spec) Components() (out []Component) {
	out = make([]Component, len(s.components))
	copy(out, s.components)
	return
}

// Component returns the named component.
func (s *Spec) Component(name string) (c Component, ok bool) {
	for _, comp := range s.components {
		if comp.Name == name {
			return comp, true
		}
	}
	return
}

// Builder accumulates named components. Methods return the receiver for
// chaining; Build validates and freezes the list.
type Builder struct {
	components []Component
	errs       []error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Intercept adds a constant term.
func (b *Builder) Intercept(name string) *Builder {
	b.components = append(b.components, Component{Name: name, Kind: Intercept})
	return b
}

// Covariate adds a fixed effect with one value per observation.
func (b *Builder) Covariate(name string, values []float64) *Builder {
	if len(values) == 0 {
		b.errs = append(b.errs, fmt.Errorf("covariate %q has no values", name))
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	b.components = append(b.components, Component{Name: name, Kind: Covariate, Values: vals})
	return b
}

// Field adds a spatially structured random effect over the given mesh. The
// projector maps the observation locations onto the mesh nodes.
func (b *Builder) Field(name string, m projector.Mesh, proj *projector.Projector, prior Matern) *Builder {
	if m == nil || proj == nil {
		b.errs = append(b.errs, fmt.Errorf("field %q needs a mesh and a projector", name))
	} else if proj.NumNodes() != m.NodeCount() {
		b.errs = append(b.errs, fmt.Errorf("field %q: projector built for %d nodes, mesh has %d",
			name, proj.NumNodes(), m.NodeCount()))
	}
	if prior.Alpha == 0 {
		prior.Alpha = 2
	}
	b.components = append(b.components, Component{
		Name:  name,
		Kind:  Field,
		Mesh:  m,
		Proj:  proj,
		Prior: prior,
	})
	return b
}

// ZeroInflation adds a zero-inflation mixture term of the given family.
func (b *Builder) ZeroInflation(name, family string) *Builder {
	b.components = append(b.components, Component{Name: name, Kind: ZeroInflation, Family: family})
	return b
}

// Build freezes the component list. Duplicate names and malformed components
// are rejected.
func (b *Builder) Build() (*Spec, error) {
	if len(b.errs) != 0 {
		return nil, b.errs[0]
	}
	if len(b.components) == 0 {
		return nil, fmt.Errorf("a model needs at least one component")
	}
	names := make(map[string]bool, len(b.components))
	for _, c := range b.components {
		if c.Name == "" {
			return nil, fmt.Errorf("component of kind %v has an empty name", c.Kind)
		}
		if names[c.Name] {
			return nil, fmt.Errorf("duplicate component name %q", c.Name)
		}
		names[c.Name] = true
	}
	comps := make([]Component, len(b.components))
	copy(comps, b.components)
	return &Spec{components: comps}, nil
}
