package geometry

import (
	"math"
	"sort"
)

// ConvexHull returns the convex hull of pts in counter-clockwise order using
// Andrew's monotone chain. Collinear points on the hull are discarded. The
// input slice is not modified.
func ConvexHull(pts []Point) (hull []Point) {
	n := len(pts)
	if n < 3 {
		hull = make([]Point, n)
		copy(hull, pts)
		return
	}
	sorted := make([]Point, n)
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	var lower, upper []Point
	for _, p := range sorted {
		for len(lower) >= 2 &&
			Orient2D(lower[len(lower)-2].X, lower[len(lower)-2].Y,
				lower[len(lower)-1].X, lower[len(lower)-1].Y, p.X, p.Y) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := n - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 &&
			Orient2D(upper[len(upper)-2].X, upper[len(upper)-2].Y,
				upper[len(upper)-1].X, upper[len(upper)-1].Y, p.X, p.Y) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	hull = append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return
}

// OffsetConvex returns the polygon obtained by displacing every edge of a
// counter-clockwise convex polygon outward by distance d, joining adjacent
// edges at their intersection (miter join).
func OffsetConvex(poly []Point, d float64) (out []Point) {
	n := len(poly)
	if n < 3 || d == 0 {
		out = make([]Point, n)
		copy(out, poly)
		return
	}
	// Offset line for each edge: point on line plus outward normal * d
	type line struct {
		px, py, dx, dy float64
	}
	lines := make([]line, n)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		ex, ey := b.X-a.X, b.Y-a.Y
		ln := math.Hypot(ex, ey)
		// Outward normal of a CCW polygon points right of the edge direction
		nx, ny := ey/ln, -ex/ln
		lines[i] = line{a.X + nx*d, a.Y + ny*d, ex, ey}
	}
	out = make([]Point, n)
	for i := 0; i < n; i++ {
		l1 := lines[(i+n-1)%n]
		l2 := lines[i]
		det := l1.dx*l2.dy - l1.dy*l2.dx
		if math.Abs(det) < 1.e-14 {
			// Near-parallel adjacent edges, fall back to the displaced vertex
			out[i] = NewPoint2D(l2.px, l2.py)
			continue
		}
		t := ((l2.px-l1.px)*l2.dy - (l2.py-l1.py)*l2.dx) / det
		out[i] = NewPoint2D(l1.px+t*l1.dx, l1.py+t*l1.dy)
	}
	return
}

// ConcaveHull returns a hull of pts whose edges are no longer than maxEdge
// where the data allows it. Starting from the convex hull, each overlong edge
// is split at the interior point nearest to it, provided the cut triangle
// contains no other point, so every input point remains inside or on the
// hull. maxEdge <= 0 returns the convex hull unchanged.
func ConcaveHull(pts []Point, maxEdge float64) (hull []Point) {
	hull = ConvexHull(pts)
	if maxEdge <= 0 || len(hull) < 3 {
		return
	}
	onHull := make(map[Point]bool, len(hull))
	for _, p := range hull {
		onHull[p] = true
	}
	for iter := 0; iter < len(pts); iter++ {
		var changed bool
		for i := 0; i < len(hull); i++ {
			a := hull[i]
			b := hull[(i+1)%len(hull)]
			if math.Sqrt(a.DistanceSq(b)) <= maxEdge {
				continue
			}
			best, ok := nearestSplit(pts, onHull, a, b)
			if !ok {
				continue
			}
			hull = append(hull, Point{})
			copy(hull[i+2:], hull[i+1:])
			hull[i+1] = best
			onHull[best] = true
			changed = true
			break
		}
		if !changed {
			break
		}
	}
	return
}

func nearestSplit(pts []Point, onHull map[Point]bool, a, b Point) (best Point, ok bool) {
	bestDist := math.Inf(1)
	for _, p := range pts {
		if onHull[p] {
			continue
		}
		// Candidate must lie on the interior side of the edge
		if Orient2D(a.X, a.Y, b.X, b.Y, p.X, p.Y) <= 0 {
			continue
		}
		d := DistancePointSegment(p, a, b)
		if d < bestDist {
			bestDist = d
			best = p
			ok = true
		}
	}
	if !ok {
		return
	}
	// Reject the split if it would strand another point outside the notch
	for _, q := range pts {
		if q == best || onHull[q] {
			continue
		}
		if _, _, _, inside := PointInTriangle(q, a, best, b, 0); inside {
			return Point{}, false
		}
	}
	return
}
