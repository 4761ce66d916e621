package geometry

import "fmt"

// Point is a location in 1D or 2D coordinate space. A Point may carry a
// coordinate reference system identifier, which is propagated but not
// interpreted. Points are immutable values.
type Point struct {
	X, Y float64
	Dim  int
	CRS  string
}

func NewPoint1D(x float64) Point {
	return Point{X: x, Dim: 1}
}

func NewPoint2D(x, y float64) Point {
	return Point{X: x, Y: y, Dim: 2}
}

// WithCRS returns a copy of p tagged with the given CRS identifier.
func (p Point) WithCRS(crs string) Point {
	p.CRS = crs
	return p
}

func (p Point) String() string {
	if p.Dim == 1 {
		return fmt.Sprintf("(%g)", p.X)
	}
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// DistanceSq returns the squared euclidean distance between p and q.
func (p Point) DistanceSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}
