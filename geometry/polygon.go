package geometry

import "math"

// PolygonContains reports whether p lies inside the simple polygon poly
// (vertices in order, no closing repeat). Points within tol of an edge are
// treated as contained.
func PolygonContains(poly []Point, p Point, tol float64) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if DistancePointSegment(p, poly[i], poly[(i+1)%n]) <= tol {
			return true
		}
	}
	// Ray casting along +x
	var inside bool
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// PolygonArea returns the unsigned area of the simple polygon poly.
func PolygonArea(poly []Point) float64 {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// IsCCW reports whether the simple polygon poly winds counter-clockwise.
func IsCCW(poly []Point) bool {
	var sum float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum > 0
}

// Reverse returns poly with the vertex order reversed.
func Reverse(poly []Point) (out []Point) {
	out = make([]Point, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return
}

// BoundingBox returns the axis-aligned bounds of pts.
func BoundingBox(pts []Point) (xmin, ymin, xmax, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		xmin = math.Min(xmin, p.X)
		ymin = math.Min(ymin, p.Y)
		xmax = math.Max(xmax, p.X)
		ymax = math.Max(ymax, p.Y)
	}
	return
}
