package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	// Orientation
	{
		assert.True(t, Orient2D(0, 0, 1, 0, 0, 1) > 0)  // counter-clockwise
		assert.True(t, Orient2D(0, 0, 0, 1, 1, 0) < 0)  // clockwise
		assert.True(t, Orient2D(0, 0, 1, 1, 2, 2) == 0) // collinear
	}
	// InCircle is handedness independent
	{
		// Circumcircle of the unit right triangle has center (0.5,0.5)
		assert.True(t, InCircle(0, 0, 1, 0, 0, 1, 0.5, 0.5))
		assert.True(t, InCircle(0, 1, 1, 0, 0, 0, 0.5, 0.5))
		assert.False(t, InCircle(0, 0, 1, 0, 0, 1, 2, 2))
	}
	// Segment distance
	{
		a, b := NewPoint2D(0, 0), NewPoint2D(2, 0)
		assert.InDelta(t, 1.0, DistancePointSegment(NewPoint2D(1, 1), a, b), 1.e-12)
		assert.InDelta(t, 1.0, DistancePointSegment(NewPoint2D(3, 0), a, b), 1.e-12)
		assert.InDelta(t, 0.0, DistancePointSegment(NewPoint2D(0.5, 0), a, b), 1.e-12)
	}
	// Collinearity
	{
		line := []Point{NewPoint2D(0, 0), NewPoint2D(1, 1), NewPoint2D(2, 2), NewPoint2D(-3, -3)}
		assert.True(t, Collinear(line))
		assert.False(t, Collinear(append(line, NewPoint2D(0, 1))))
	}
	// Barycentric coordinates partition unity
	{
		a, b, c := NewPoint2D(0, 0), NewPoint2D(2, 0), NewPoint2D(0, 2)
		l1, l2, l3, inside := PointInTriangle(NewPoint2D(0.5, 0.5), a, b, c, 0)
		assert.True(t, inside)
		assert.InDelta(t, 1.0, l1+l2+l3, 1.e-12)
		_, _, _, inside = PointInTriangle(NewPoint2D(3, 3), a, b, c, 0)
		assert.False(t, inside)
	}
}

func TestHulls(t *testing.T) {
	square := []Point{
		NewPoint2D(0, 0), NewPoint2D(1, 0), NewPoint2D(1, 1), NewPoint2D(0, 1),
	}
	// Convex hull drops interior points and winds counter-clockwise
	{
		hull := ConvexHull(append(square, NewPoint2D(0.5, 0.5)))
		assert.Equal(t, 4, len(hull))
		assert.True(t, IsCCW(hull))
		assert.InDelta(t, 1.0, PolygonArea(hull), 1.e-12)
		assert.True(t, PolygonContains(hull, NewPoint2D(0.5, 0.5), 0))
		assert.False(t, PolygonContains(hull, NewPoint2D(1.5, 0.5), 0))
	}
	// Offsetting the unit square by 1 triples the side length
	{
		hull := ConvexHull(square)
		out := OffsetConvex(hull, 1)
		assert.Equal(t, 4, len(out))
		assert.InDelta(t, 9.0, PolygonArea(out), 1.e-9)
		for _, p := range square {
			assert.True(t, PolygonContains(out, p, 0))
		}
	}
	// Concave hull splits overlong edges at the nearest interior point and
	// keeps every input point covered
	{
		pts := append(square, NewPoint2D(0.5, 0.1))
		hull := ConcaveHull(pts, 0.8)
		assert.Equal(t, 5, len(hull))
		scale := 1.e-12
		for _, p := range pts {
			assert.True(t, PolygonContains(hull, p, scale), "point %v escaped the hull", p)
		}
		// Threshold larger than every edge leaves the convex hull unchanged
		assert.Equal(t, 4, len(ConcaveHull(pts, 10)))
	}
}

func TestBoundingBox(t *testing.T) {
	xmin, ymin, xmax, ymax := BoundingBox([]Point{
		NewPoint2D(-1, 2), NewPoint2D(3, -4), NewPoint2D(0, 0),
	})
	assert.Equal(t, -1.0, xmin)
	assert.Equal(t, -4.0, ymin)
	assert.Equal(t, 3.0, xmax)
	assert.Equal(t, 2.0, ymax)
}

func TestPointValues(t *testing.T) {
	p := NewPoint2D(1, 2).WithCRS("EPSG:32633")
	assert.Equal(t, "EPSG:32633", p.CRS)
	assert.Equal(t, 2, p.Dim)
	assert.InDelta(t, math.Sqrt(5), math.Sqrt(p.DistanceSq(NewPoint2D(0, 0))), 1.e-12)
	assert.Equal(t, 1, NewPoint1D(3).Dim)
}
