package model

import (
	"context"
	"fmt"

	"github.com/spatialfield/fmesher/geometry"
)

// Observation carries the response data handed to the engine: one response
// per location, with optional exposure (e.g. integration weights for point
// process likelihoods) and case weights.
type Observation struct {
	// Family names the likelihood, e.g. "poisson", "binomial", "cp" for a
	// log-Gaussian Cox process.
	Family    string
	Response  []float64
	Locations []geometry.Point
	Exposure  []float64
	Weights   []float64
}

func (o Observation) Validate() error {
	n := len(o.Response)
	if n == 0 {
		return fmt.Errorf("observation spec has no responses")
	}
	if len(o.Locations) != 0 && len(o.Locations) != n {
		return fmt.Errorf("have %d locations for %d responses", len(o.Locations), n)
	}
	if len(o.Exposure) != 0 && len(o.Exposure) != n {
		return fmt.Errorf("have %d exposures for %d responses", len(o.Exposure), n)
	}
	if len(o.Weights) != 0 && len(o.Weights) != n {
		return fmt.Errorf("have %d weights for %d responses", len(o.Weights), n)
	}
	return nil
}

// FieldPosterior holds the engine's posterior for one component's
// coefficients: vectors indexed by mesh node (or a single entry for scalar
// components). Consumed unchanged by Projector.Apply.
type FieldPosterior struct {
	Mean      []float64
	Quantiles map[float64][]float64
	Draws     [][]float64
}

// Result maps component names to their posteriors.
type Result struct {
	Posteriors map[string]*FieldPosterior
}

// Posterior returns the posterior of the named component.
func (r *Result) Posterior(name string) (fp *FieldPosterior, ok bool) {
	fp, ok = r.Posteriors[name]
	return
}

// InferenceEngine is the external collaborator that fits the model. It
// consumes the mesh geometry and projector triples carried by the spec's
// field components and returns posterior coefficient vectors.
type InferenceEngine interface {
	Fit(ctx context.Context, spec *Spec, obs Observation) (*Result, error)
}

// Fit validates the inputs and delegates to the engine.
func Fit(ctx context.Context, engine InferenceEngine, spec *Spec, obs Observation) (*Result, error) {
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	for _, c := range spec.Components() {
		if c.Kind == Covariate && len(c.Values) != len(obs.Response) {
			return nil, fmt.Errorf("covariate %q has %d values for %d responses",
				c.Name, len(c.Values), len(obs.Response))
		}
		if c.Kind == Field && c.Proj.NumQuery() != len(obs.Response) {
			return nil, fmt.Errorf("field %q projector covers %d locations for %d responses",
				c.Name, c.Proj.NumQuery(), len(obs.Response))
		}
	}
	return engine.Fit(ctx, spec, obs)
}
