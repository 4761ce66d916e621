package mesh2d

import (
	"math"

	"github.com/spatialfield/fmesher/geometry"
)

// gridLocator buckets triangles by their bounding boxes on a uniform grid so
// point location does not scan the whole element list. Within a bucket,
// candidates are kept in ascending element order, which makes the first
// containing element the lowest-indexed one.
type gridLocator struct {
	x0, y0 float64
	dx, dy float64
	nx, ny int
	bins   [][]int
	tol    float64
}

func newGridLocator(nodes []geometry.Point, tris [][3]int) (gl *gridLocator) {
	var (
		xmin, ymin, xmax, ymax = geometry.BoundingBox(nodes)
		k                      = len(tris)
	)
	n := int(math.Sqrt(float64(k)/2)) + 1
	gl = &gridLocator{
		x0: xmin,
		y0: ymin,
		nx: n,
		ny: n,
		dx: (xmax - xmin) / float64(n),
		dy: (ymax - ymin) / float64(n),
	}
	scale := math.Max(xmax-xmin, ymax-ymin)
	gl.tol = 1.e-12 * scale
	if gl.dx == 0 {
		gl.dx = 1
	}
	if gl.dy == 0 {
		gl.dy = 1
	}
	gl.bins = make([][]int, gl.nx*gl.ny)
	for kk, tri := range tris {
		a, b, c := nodes[tri[0]], nodes[tri[1]], nodes[tri[2]]
		i0, j0 := gl.cell(math.Min(a.X, math.Min(b.X, c.X)), math.Min(a.Y, math.Min(b.Y, c.Y)))
		i1, j1 := gl.cell(math.Max(a.X, math.Max(b.X, c.X)), math.Max(a.Y, math.Max(b.Y, c.Y)))
		for j := j0; j <= j1; j++ {
			for i := i0; i <= i1; i++ {
				gl.bins[i+gl.nx*j] = append(gl.bins[i+gl.nx*j], kk)
			}
		}
	}
	return
}

func (gl *gridLocator) cell(x, y float64) (i, j int) {
	i = int((x - gl.x0) / gl.dx)
	j = int((y - gl.y0) / gl.dy)
	if i < 0 {
		i = 0
	}
	if i > gl.nx-1 {
		i = gl.nx - 1
	}
	if j < 0 {
		j = 0
	}
	if j > gl.ny-1 {
		j = gl.ny - 1
	}
	return
}

// locate returns the lowest-indexed triangle containing p together with the
// barycentric coordinates of p in that triangle.
func (gl *gridLocator) locate(nodes []geometry.Point, tris [][3]int, p geometry.Point) (k int, l [3]float64, found bool) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return
	}
	if p.X < gl.x0-gl.tol || p.Y < gl.y0-gl.tol ||
		p.X > gl.x0+float64(gl.nx)*gl.dx+gl.tol || p.Y > gl.y0+float64(gl.ny)*gl.dy+gl.tol {
		return
	}
	i, j := gl.cell(p.X, p.Y)
	for _, kk := range gl.bins[i+gl.nx*j] {
		tri := tris[kk]
		l1, l2, l3, inside := geometry.PointInTriangle(p,
			nodes[tri[0]], nodes[tri[1]], nodes[tri[2]], gl.tol)
		if inside {
			return kk, [3]float64{l1, l2, l3}, true
		}
	}
	return
}
