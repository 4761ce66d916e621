package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spatialfield/fmesher/projector"
	"github.com/spatialfield/fmesher/utils"
)

var job1D = []byte(`
Title: Interval field
Dimension: 1
Knots: [1, 2, 3, 4, 6]
Degree: 2
BoundaryKind: [neumann, free]
Cutoff: 0.001
Queries: [[2.5], [3.5]]
Coefficients: [1, 1, 1, 1, 1, 1, 1]
OutOfDomain: mask
`)

var job2D = []byte(`
Title: Planar field
Dimension: 2
Locations: [[0, 0], [1, 0], [1, 1], [0, 1], [0.4, 0.6]]
MaxEdge: 0.4
MaxEdgeExtension: 0.9
Offset: 0.5
Cutoff: 0.000001
Queries: [[0.25, 0.25], [0.9, 0.1]]
`)

func TestParse1DJob(t *testing.T) {
	var ip MeshParameters
	assert.NoError(t, ip.Parse(job1D))
	assert.Equal(t, "Interval field", ip.Title)
	assert.Equal(t, 1, ip.Dimension)

	knots, opts, err := ip.Mesh1DOptions()
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 6}, knots)
	assert.Equal(t, 2, opts.Degree)
	assert.Equal(t, 0.001, opts.Cutoff)
	assert.Equal(t, utils.BoundaryNeumann, opts.Boundary[0])
	assert.Equal(t, utils.BoundaryFree, opts.Boundary[1])

	pts, err := ip.QueryPoints()
	assert.NoError(t, err)
	assert.Equal(t, 2, len(pts))
	assert.Equal(t, 2.5, pts[0].X)
	assert.Equal(t, 1, pts[0].Dim)

	policy, err := ip.Policy()
	assert.NoError(t, err)
	assert.Equal(t, projector.Mask, policy)
}

func TestParse2DJob(t *testing.T) {
	var ip MeshParameters
	assert.NoError(t, ip.Parse(job2D))

	locs, opts, err := ip.Mesh2DOptions()
	assert.NoError(t, err)
	assert.Equal(t, 5, len(locs))
	assert.Equal(t, 0.6, locs[4].Y)
	assert.Equal(t, 0.4, opts.MaxEdge)
	assert.Equal(t, 0.9, opts.MaxEdgeExt)
	assert.Equal(t, 0.5, opts.Offset)
	assert.Nil(t, opts.Boundary)

	policy, err := ip.Policy()
	assert.NoError(t, err)
	assert.Equal(t, projector.FailFast, policy)
}

func TestParseRejectsBadJobs(t *testing.T) {
	var ip MeshParameters

	assert.NoError(t, ip.Parse([]byte("Dimension: 1\nKnots: [0, 1]\nBoundaryKind: [free, free, free]")))
	_, _, err := ip.Mesh1DOptions()
	assert.Error(t, err)

	ip = MeshParameters{}
	assert.NoError(t, ip.Parse([]byte("Dimension: 2\nLocations: [[0, 0, 0]]")))
	_, _, err = ip.Mesh2DOptions()
	assert.Error(t, err)

	ip = MeshParameters{}
	assert.NoError(t, ip.Parse([]byte("Dimension: 1")))
	_, _, err = ip.Mesh1DOptions()
	assert.Error(t, err)

	ip = MeshParameters{OutOfDomain: "drop"}
	_, err = ip.Policy()
	assert.Error(t, err)

	ip = MeshParameters{Dimension: 1, Queries: [][]float64{{1, 2}}}
	_, err = ip.QueryPoints()
	assert.Error(t, err)
}
