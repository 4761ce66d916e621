package mesh2d

import (
	"math"

	"github.com/pradeep-pyro/triangle"
)

// constrainedDelaunay wraps the Triangle binding. The binding dereferences
// the hole list unconditionally, so at least one hole marker must be passed;
// a marker beyond the bounding box lands in the region outside the constraint
// hull, which Triangle discards anyway, leaving the triangulation untouched.
// The returned vertex slice preserves the input ordering, with any vertices
// the triangulator adds appended after the inputs, so segment indices stay
// valid across calls.
func constrainedDelaunay(pts [][2]float64, segs [][2]int32) (verts [][2]float64, faces [][3]int32) {
	var (
		xmax = math.Inf(-1)
		ymax = math.Inf(-1)
	)
	for _, p := range pts {
		xmax = math.Max(xmax, p[0])
		ymax = math.Max(ymax, p[1])
	}
	holes := [][2]float64{{xmax + 1, ymax + 1}}
	verts, faces = triangle.ConstrainedDelaunay(pts, segs, holes)
	return
}
