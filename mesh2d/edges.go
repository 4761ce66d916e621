package mesh2d

import (
	"fmt"
	"math"
)

// EdgeKey packs the two node indices of an edge into a uint64 to act as a
// hash and an indirect access method. The smaller index occupies the low bits
// so the key is direction independent.
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] < verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(uint64(i1) + uint64(i2)<<32)
	return
}

// Vertices unpacks the edge node indices, smaller first.
func (ek EdgeKey) Vertices() (verts [2]int) {
	i2 := ek >> 32
	verts[1] = int(i2)
	verts[0] = int(ek - i2<<32)
	return
}

type edgeInfo struct {
	length  float64
	numTris int
	// bound is the tightest max-edge limit among the zones of the adjacent
	// triangles.
	bound float64
}

// buildEdgeMap walks the triangle list once, accumulating per-edge adjacency
// counts, lengths, and the applicable zone resolution bound.
func buildEdgeMap(verts [][2]float64, faces [][3]int32, zoneBound func(k int) float64) (edges map[EdgeKey]*edgeInfo) {
	edges = make(map[EdgeKey]*edgeInfo, 3*len(faces)/2)
	for k, f := range faces {
		bound := zoneBound(k)
		for i := 0; i < 3; i++ {
			a, b := int(f[i]), int(f[(i+1)%3])
			key := NewEdgeKey([2]int{a, b})
			e, ok := edges[key]
			if !ok {
				dx := verts[a][0] - verts[b][0]
				dy := verts[a][1] - verts[b][1]
				e = &edgeInfo{length: math.Hypot(dx, dy), bound: bound}
				edges[key] = e
			} else if e.numTris > 1 {
				panic("incorrect edge construction, more than two connected triangles")
			}
			if bound < e.bound {
				e.bound = bound
			}
			e.numTris++
		}
	}
	return
}
