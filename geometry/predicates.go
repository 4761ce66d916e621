package geometry

import "math"

// Orient2D returns twice the signed area of the triangle a-b-c: positive for
// counter-clockwise orientation, negative for clockwise, zero for collinear.
func Orient2D(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
}

// InCircle reports whether point d lies strictly inside the circumcircle of
// the triangle a-b-c, independent of the handedness of a-b-c.
func InCircle(ax, ay, bx, by, cx, cy, dx, dy float64) (inside bool) {
	// Calculate handedness, counter-clockwise is (positive) and clockwise is (negative)
	signBit := math.Signbit(Orient2D(ax, ay, bx, by, cx, cy))
	ax_ := ax - dx
	ay_ := ay - dy
	bx_ := bx - dx
	by_ := by - dy
	cx_ := cx - dx
	cy_ := cy - dy
	det := (ax_*ax_+ay_*ay_)*(bx_*cy_-cx_*by_) -
		(bx_*bx_+by_*by_)*(ax_*cy_-cx_*ay_) +
		(cx_*cx_+cy_*cy_)*(ax_*by_-bx_*ay_)
	if signBit {
		return det < 0
	}
	return det > 0
}

// DistancePointSegment returns the euclidean distance from p to the segment a-b.
func DistancePointSegment(p, a, b Point) float64 {
	var (
		abx, aby = b.X - a.X, b.Y - a.Y
		apx, apy = p.X - a.X, p.Y - a.Y
	)
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Sqrt(p.DistanceSq(a))
	}
	t := (apx*abx + apy*aby) / lenSq
	switch {
	case t <= 0:
		return math.Sqrt(p.DistanceSq(a))
	case t >= 1:
		return math.Sqrt(p.DistanceSq(b))
	}
	qx := a.X + t*abx
	qy := a.Y + t*aby
	dx, dy := p.X-qx, p.Y-qy
	return math.Sqrt(dx*dx + dy*dy)
}

// Collinear reports whether all points lie on one line, within a tolerance
// scaled by the extent of the point set.
func Collinear(pts []Point) bool {
	if len(pts) < 3 {
		return true
	}
	var (
		a     = pts[0]
		b     Point
		found bool
		scale float64
	)
	for _, p := range pts[1:] {
		d := a.DistanceSq(p)
		if d > scale {
			scale = d
			b = p
			found = true
		}
	}
	if !found || scale == 0 {
		return true
	}
	tol := 1.e-12 * scale
	for _, p := range pts {
		if math.Abs(Orient2D(a.X, a.Y, b.X, b.Y, p.X, p.Y)) > tol {
			return false
		}
	}
	return true
}

// PointInTriangle reports whether p lies inside or on the triangle a-b-c and
// returns its barycentric coordinates with respect to (a, b, c). The
// coordinates sum to 1 exactly.
func PointInTriangle(p, a, b, c Point, tol float64) (l1, l2, l3 float64, inside bool) {
	det := Orient2D(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if det == 0 {
		return 0, 0, 0, false
	}
	l1 = Orient2D(p.X, p.Y, b.X, b.Y, c.X, c.Y) / det
	l2 = Orient2D(a.X, a.Y, p.X, p.Y, c.X, c.Y) / det
	l3 = 1 - l1 - l2
	inside = l1 >= -tol && l2 >= -tol && l3 >= -tol
	return
}
