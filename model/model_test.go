package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spatialfield/fmesher/geometry"
	"github.com/spatialfield/fmesher/mesh1d"
	"github.com/spatialfield/fmesher/projector"
)

type recordingEngine struct {
	spec *Spec
	obs  Observation
}

func (e *recordingEngine) Fit(_ context.Context, spec *Spec, obs Observation) (*Result, error) {
	e.spec = spec
	e.obs = obs
	field, _ := spec.Component("field")
	n := field.Mesh.NodeCount()
	mean := make([]float64, n)
	for i := range mean {
		mean[i] = 1
	}
	return &Result{Posteriors: map[string]*FieldPosterior{
		"field": {Mean: mean},
	}}, nil
}

func fieldFixture(t *testing.T, n int) (*mesh1d.Mesh, *projector.Projector, []geometry.Point) {
	m, err := mesh1d.New([]float64{0, 1, 2, 3}, mesh1d.Options{})
	assert.NoError(t, err)
	locs := make([]geometry.Point, n)
	for i := range locs {
		locs[i] = geometry.NewPoint1D(3 * float64(i) / float64(n-1))
	}
	p, err := projector.New(m, locs, projector.FailFast)
	assert.NoError(t, err)
	return m, p, locs
}

func TestBuilderValidation(t *testing.T) {
	m, p, _ := fieldFixture(t, 4)

	// Duplicate names are rejected
	_, err := NewBuilder().
		Intercept("mu").
		Covariate("mu", []float64{1, 2, 3, 4}).
		Build()
	assert.Error(t, err)

	// Empty builder is rejected
	_, err = NewBuilder().Build()
	assert.Error(t, err)

	// Empty name is rejected
	_, err = NewBuilder().Intercept("").Build()
	assert.Error(t, err)

	// Field requires both mesh and projector
	_, err = NewBuilder().Field("field", nil, nil, Matern{}).Build()
	assert.Error(t, err)

	// A valid spec keeps component order and defaults the SPDE order
	spec, err := NewBuilder().
		Intercept("mu").
		Covariate("depth", []float64{1, 2, 3, 4}).
		Field("field", m, p, Matern{Range: 2, Sigma: 1}).
		ZeroInflation("zero", "pointmass").
		Build()
	assert.NoError(t, err)
	comps := spec.Components()
	assert.Equal(t, 4, len(comps))
	assert.Equal(t, "mu", comps[0].Name)
	assert.Equal(t, Field, comps[2].Kind)
	assert.Equal(t, 2.0, comps[2].Prior.Alpha)
	zc, ok := spec.Component("zero")
	assert.True(t, ok)
	assert.Equal(t, "pointmass", zc.Family)
}

func TestFitDelegation(t *testing.T) {
	m, p, locs := fieldFixture(t, 4)
	spec, err := NewBuilder().
		Intercept("mu").
		Field("field", m, p, Matern{Range: 1, Sigma: 0.5}).
		Build()
	assert.NoError(t, err)

	obs := Observation{
		Family:    "poisson",
		Response:  []float64{0, 2, 1, 4},
		Locations: locs,
	}
	engine := &recordingEngine{}
	res, err := Fit(context.Background(), engine, spec, obs)
	assert.NoError(t, err)
	assert.Equal(t, spec, engine.spec)

	// The posterior feeds straight back through the projector
	fp, ok := res.Posterior("field")
	assert.True(t, ok)
	values, err := p.Apply(fp.Mean)
	assert.NoError(t, err)
	for _, v := range values {
		assert.InDelta(t, 1.0, v, 1.e-9)
	}
}

func TestFitValidation(t *testing.T) {
	m, p, locs := fieldFixture(t, 4)
	engine := &recordingEngine{}

	// Covariate length must match the responses
	spec, err := NewBuilder().Covariate("depth", []float64{1, 2}).Build()
	assert.NoError(t, err)
	_, err = Fit(context.Background(), engine, spec, Observation{
		Family:   "poisson",
		Response: []float64{1, 2, 3},
	})
	assert.Error(t, err)

	// Field projector must cover the observation locations
	spec, err = NewBuilder().Field("field", m, p, Matern{}).Build()
	assert.NoError(t, err)
	_, err = Fit(context.Background(), engine, spec, Observation{
		Family:    "poisson",
		Response:  []float64{1, 2},
		Locations: locs[:2],
	})
	assert.Error(t, err)

	// Mismatched exposure length is rejected before the engine runs
	_, err = Fit(context.Background(), engine, spec, Observation{
		Family:   "cp",
		Response: []float64{1, 2, 3, 4},
		Exposure: []float64{1},
	})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	draws := [][]float64{
		{1, 2},
		{3, 4},
		{5, 12},
	}
	fp, err := Summarize(draws, []float64{0.5})
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, fp.Mean[0], 1.e-12)
	assert.InDelta(t, 6.0, fp.Mean[1], 1.e-12)
	assert.InDelta(t, 3.0, fp.Quantiles[0.5][0], 1.e-12)
	assert.InDelta(t, 4.0, fp.Quantiles[0.5][1], 1.e-12)

	_, err = Summarize(nil, nil)
	assert.Error(t, err)
	_, err = Summarize([][]float64{{1}, {1, 2}}, nil)
	assert.Error(t, err)
	_, err = Summarize(draws, []float64{1.5})
	assert.Error(t, err)
}
