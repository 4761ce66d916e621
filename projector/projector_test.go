package projector

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spatialfield/fmesher/geometry"
	"github.com/spatialfield/fmesher/mesh1d"
	"github.com/spatialfield/fmesher/mesh2d"
	"github.com/spatialfield/fmesher/utils"
)

func testMesh1D(t *testing.T) *mesh1d.Mesh {
	m, err := mesh1d.New([]float64{0, 1, 2, 3, 4}, mesh1d.Options{Degree: 2})
	assert.NoError(t, err)
	return m
}

func TestConstantFieldExactness(t *testing.T) {
	m := testMesh1D(t)
	queries := []geometry.Point{
		geometry.NewPoint1D(0.1),
		geometry.NewPoint1D(1.5),
		geometry.NewPoint1D(3.99),
		geometry.NewPoint1D(4),
	}
	p, err := New(m, queries, FailFast)
	assert.NoError(t, err)
	assert.Equal(t, len(queries), p.NumQuery())
	assert.Equal(t, m.NodeCount(), p.NumNodes())

	coeffs := utils.VecGetF64(utils.NewVecConst(m.NodeCount(), 3.25))
	out, err := p.Apply(coeffs)
	assert.NoError(t, err)
	for i, v := range out {
		assert.InDelta(t, 3.25, v, 1.e-9, "query %d", i)
	}
}

func TestLinearFieldExactness(t *testing.T) {
	// A degree-1 basis reproduces linear functions of the coordinate
	m, err := mesh1d.New([]float64{0, 1, 2, 3, 4}, mesh1d.Options{Degree: 1})
	assert.NoError(t, err)
	coeffs := make([]float64, m.NodeCount())
	for i, x := range m.Nodes() {
		coeffs[i] = 2*x + 1
	}
	queries := []geometry.Point{
		geometry.NewPoint1D(0.5),
		geometry.NewPoint1D(2.25),
		geometry.NewPoint1D(3.75),
	}
	p, err := New(m, queries, FailFast)
	assert.NoError(t, err)
	out, err := p.Apply(coeffs)
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, out[0], 1.e-12)
	assert.InDelta(t, 5.5, out[1], 1.e-12)
	assert.InDelta(t, 8.5, out[2], 1.e-12)
}

func TestOutOfDomainPolicies(t *testing.T) {
	m := testMesh1D(t)
	queries := []geometry.Point{
		geometry.NewPoint1D(1),
		geometry.NewPoint1D(9),
		geometry.NewPoint1D(2),
	}
	// Fail fast names the offending query
	var oodErr *utils.OutOfDomainError
	_, err := New(m, queries, FailFast)
	assert.Error(t, err)
	assert.True(t, errors.As(err, &oodErr))
	assert.Equal(t, 1, oodErr.Query)
	assert.Equal(t, 9.0, oodErr.X)

	// Mask yields NaN at the offending position only
	p, err := New(m, queries, Mask)
	assert.NoError(t, err)
	assert.Equal(t, utils.Index{1}, p.Missing())
	out, err := p.Apply(utils.VecGetF64(utils.NewVecConst(m.NodeCount(), 7)))
	assert.NoError(t, err)
	assert.InDelta(t, 7.0, out[0], 1.e-9)
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 7.0, out[2], 1.e-9)
}

func TestTriplesMatchApply(t *testing.T) {
	m := testMesh1D(t)
	queries := []geometry.Point{
		geometry.NewPoint1D(0.25),
		geometry.NewPoint1D(2.5),
	}
	p, err := New(m, queries, FailFast)
	assert.NoError(t, err)

	coeffs := []float64{1, 2, 3, 4, 5, 6, 7}[:m.NodeCount()]
	out, err := p.Apply(coeffs)
	assert.NoError(t, err)

	manual := make([]float64, p.NumQuery())
	for _, tr := range p.Triples() {
		manual[tr.Row] += tr.Weight * coeffs[tr.Col]
	}
	for i := range out {
		assert.InDelta(t, out[i], manual[i], 1.e-12)
	}

	nr, nc := p.Matrix().Dims()
	assert.Equal(t, p.NumQuery(), nr)
	assert.Equal(t, p.NumNodes(), nc)
}

func TestApplyBatchAndConcurrency(t *testing.T) {
	m := testMesh1D(t)
	queries := []geometry.Point{
		geometry.NewPoint1D(0.5),
		geometry.NewPoint1D(3.5),
	}
	p, err := New(m, queries, FailFast)
	assert.NoError(t, err)

	draws := [][]float64{
		utils.VecGetF64(utils.NewVecConst(m.NodeCount(), 1)),
		utils.VecGetF64(utils.NewVecConst(m.NodeCount(), 2)),
		utils.VecGetF64(utils.NewVecConst(m.NodeCount(), 3)),
	}
	out, err := p.ApplyBatch(draws)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(out))
	for i, row := range out {
		for _, v := range row {
			assert.InDelta(t, float64(i+1), v, 1.e-9)
		}
	}

	// The operator is read-only after construction, concurrent Apply is safe
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(c float64) {
			defer wg.Done()
			res, applyErr := p.Apply(utils.VecGetF64(utils.NewVecConst(m.NodeCount(), c)))
			assert.NoError(t, applyErr)
			assert.InDelta(t, c, res[0], 1.e-9)
		}(float64(i))
	}
	wg.Wait()

	_, err = p.Apply([]float64{1, 2})
	assert.Error(t, err)
}

func TestProjector2D(t *testing.T) {
	anchors := []geometry.Point{
		geometry.NewPoint2D(0, 0),
		geometry.NewPoint2D(1, 0),
		geometry.NewPoint2D(1, 1),
		geometry.NewPoint2D(0, 1),
		geometry.NewPoint2D(0.5, 0.5),
	}
	m, err := mesh2d.New(anchors, mesh2d.Options{MaxEdge: 0.6, Offset: 0.4})
	assert.NoError(t, err)

	queries := append(anchors,
		geometry.NewPoint2D(0.25, 0.25),
		geometry.NewPoint2D(0.9, 0.1),
	)
	p, err := New(m, queries, FailFast)
	assert.NoError(t, err)

	out, err := p.Apply(utils.VecGetF64(utils.NewVecConst(m.NodeCount(), -2.5)))
	assert.NoError(t, err)
	for i, v := range out {
		assert.InDelta(t, -2.5, v, 1.e-9, "query %d", i)
	}

	// Per-row partition of unity
	rowSums := make([]float64, p.NumQuery())
	for _, tr := range p.Triples() {
		rowSums[tr.Row] += tr.Weight
	}
	for i, s := range rowSums {
		assert.InDelta(t, 1.0, s, 1.e-9, "row %d", i)
	}

	// Far outside the extension ring
	var oodErr *utils.OutOfDomainError
	_, err = New(m, []geometry.Point{geometry.NewPoint2D(50, 50)}, FailFast)
	assert.True(t, errors.As(err, &oodErr))
}
