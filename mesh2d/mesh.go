package mesh2d

import (
	"math"
	"sort"

	"github.com/spatialfield/fmesher/geometry"
	"github.com/spatialfield/fmesher/utils"
)

// Zone distinguishes the region of interest from the padding ring around it.
type Zone uint8

const (
	Interior Zone = iota
	Extension
)

func (z Zone) String() string {
	if z == Interior {
		return "Interior"
	}
	return "Extension"
}

// Options controls 2D mesh construction.
type Options struct {
	// MaxEdge bounds the triangle edge length inside the region of interest.
	MaxEdge float64
	// MaxEdgeExt bounds edges in the extension ring. Zero means MaxEdge.
	MaxEdgeExt float64
	// Cutoff merges input locations closer than this distance into one node.
	Cutoff float64
	// Offset is the distance the extension ring reaches beyond the region of
	// interest. Zero defaults to the extension max edge.
	Offset float64
	// Concave, when positive, bounds the edge length of the interior hull so
	// the region of interest follows the data instead of its convex hull.
	Concave float64
	// Boundary, when given, is an explicit polygon delimiting the region of
	// interest. It must enclose every anchor location.
	Boundary []geometry.Point
}

// Mesh is a triangulation of a padded 2D domain: denser where the data is,
// coarser in the extension ring, with boundary nodes flagged. Immutable after
// construction.
type Mesh struct {
	nodes        []geometry.Point
	tris         [][3]int
	zones        []Zone
	boundaryNode []bool
	interior     []geometry.Point
	ring         []geometry.Point
	loc          *gridLocator
	maxEdge      float64
	maxEdgeExt   float64
}

// maxRefinePasses caps the refine/re-triangulate loop; construction fails
// with a ResolutionError rather than returning an under-refined mesh.
var maxRefinePasses = 30

// New builds a constrained Delaunay mesh over the anchor locations. The
// region of interest is bounded by the explicit boundary polygon, a concave
// hull, or the convex hull of the anchors; a convex extension ring offset
// outward by Options.Offset pads it against boundary artifacts. Triangles are
// refined by midpoint insertion until every edge satisfies the bound of its
// zone. Identical inputs produce identical node counts and topology.
func New(locs []geometry.Point, opts Options) (*Mesh, error) {
	var (
		maxEdge = opts.MaxEdge
		maxExt  = opts.MaxEdgeExt
		cutoff  = opts.Cutoff
	)
	if maxEdge <= 0 {
		return nil, &utils.ResolutionError{MaxEdge: maxEdge, Reason: "a positive interior max edge is required"}
	}
	if cutoff < 0 {
		return nil, &utils.ResolutionError{Cutoff: cutoff, Reason: "cutoff must be non-negative"}
	}
	if maxEdge < cutoff {
		return nil, &utils.ResolutionError{MaxEdge: maxEdge, Cutoff: cutoff, Reason: "interior max edge below cutoff"}
	}
	if maxExt == 0 {
		maxExt = maxEdge
	}
	if maxExt < cutoff {
		return nil, &utils.ResolutionError{MaxEdge: maxExt, Cutoff: cutoff, Reason: "extension max edge below cutoff"}
	}

	anchors := dedup(locs, cutoff)
	if len(anchors) < 3 {
		return nil, &utils.DegenerateInputError{
			Dim:    2,
			Have:   len(anchors),
			Need:   3,
			Reason: "a triangulation needs three distinct locations after cutoff merging",
		}
	}
	if geometry.Collinear(anchors) {
		return nil, &utils.DegenerateInputError{
			Dim:    2,
			Have:   len(anchors),
			Need:   3,
			Reason: "all locations are collinear",
		}
	}

	interior, err := interiorBoundary(anchors, opts)
	if err != nil {
		return nil, err
	}

	offset := opts.Offset
	if offset <= 0 {
		offset = maxExt
	}
	outer := append(append([]geometry.Point{}, anchors...), interior...)
	ring := geometry.OffsetConvex(geometry.ConvexHull(outer), offset)

	m := &Mesh{
		interior:   interior,
		ring:       ring,
		maxEdge:    maxEdge,
		maxEdgeExt: maxExt,
	}
	if err = m.triangulate(anchors, interior, ring); err != nil {
		return nil, err
	}
	m.flagBoundaryNodes()
	m.loc = newGridLocator(m.nodes, m.tris)
	return m, nil
}

// dedup merges locations closer than cutoff, keeping the lexicographically
// first member of each cluster so reconstruction is order independent.
func dedup(locs []geometry.Point, cutoff float64) (anchors []geometry.Point) {
	sorted := make([]geometry.Point, len(locs))
	copy(sorted, locs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	cutSq := cutoff * cutoff
	for _, p := range sorted {
		var merged bool
		// Kept points are x-sorted, only a trailing window can be in range
		for i := len(anchors) - 1; i >= 0; i-- {
			if p.X-anchors[i].X > cutoff {
				break
			}
			if anchors[i].DistanceSq(p) <= cutSq {
				merged = true
				break
			}
		}
		if !merged {
			anchors = append(anchors, p)
		}
	}
	return
}

func interiorBoundary(anchors []geometry.Point, opts Options) (interior []geometry.Point, err error) {
	if len(opts.Boundary) > 0 {
		if len(opts.Boundary) < 3 {
			return nil, &utils.InvalidBoundaryError{Reason: "boundary polygon needs at least three vertices"}
		}
		interior = make([]geometry.Point, len(opts.Boundary))
		copy(interior, opts.Boundary)
		if !geometry.IsCCW(interior) {
			interior = geometry.Reverse(interior)
		}
		xmin, ymin, xmax, ymax := geometry.BoundingBox(interior)
		tol := 1.e-12 * math.Max(xmax-xmin, ymax-ymin)
		for _, a := range anchors {
			if !geometry.PolygonContains(interior, a, tol) {
				return nil, &utils.InvalidBoundaryError{
					Reason: "boundary polygon does not enclose anchor location " + a.String(),
				}
			}
		}
		return
	}
	if opts.Concave > 0 {
		return geometry.ConcaveHull(anchors, opts.Concave), nil
	}
	return geometry.ConvexHull(anchors), nil
}

// triangulate assembles the planar straight line graph (anchors plus the two
// boundary polygons as constraint segments), then alternates constrained
// Delaunay triangulation with midpoint insertion on oversize edges.
func (m *Mesh) triangulate(anchors, interior, ring []geometry.Point) error {
	var (
		pts  [][2]float64
		segs [][2]int32
		seen = make(map[[2]float64]int)
	)
	addPoint := func(p geometry.Point) int {
		key := [2]float64{p.X, p.Y}
		if i, ok := seen[key]; ok {
			return i
		}
		pts = append(pts, key)
		seen[key] = len(pts) - 1
		return len(pts) - 1
	}
	addPolygon := func(poly []geometry.Point) {
		ids := make([]int, len(poly))
		for i, p := range poly {
			ids[i] = addPoint(p)
		}
		for i := range ids {
			a, b := ids[i], ids[(i+1)%len(ids)]
			if a != b {
				segs = append(segs, [2]int32{int32(a), int32(b)})
			}
		}
	}
	for _, a := range anchors {
		addPoint(a)
	}
	addPolygon(interior)
	addPolygon(ring)

	var (
		verts     [][2]float64
		faces     [][3]int32
		converged bool
	)
	for pass := 0; pass < maxRefinePasses; pass++ {
		verts, faces = constrainedDelaunay(pts, segs)
		edges := buildEdgeMap(verts, faces, func(k int) float64 {
			if m.faceZone(verts, faces[k]) == Interior {
				return m.maxEdge
			}
			return m.maxEdgeExt
		})
		split := oversizeEdges(edges)
		if len(split) == 0 {
			converged = true
			break
		}
		pts, segs = insertMidpoints(verts, segs, split)
	}
	if !converged {
		return &utils.ResolutionError{
			MaxEdge: m.maxEdge,
			Reason:  "edge bound not met within the refinement pass limit",
		}
	}

	m.nodes = make([]geometry.Point, len(verts))
	for i, v := range verts {
		m.nodes[i] = geometry.NewPoint2D(v[0], v[1])
	}
	m.tris = make([][3]int, len(faces))
	m.zones = make([]Zone, len(faces))
	for k, f := range faces {
		m.tris[k] = [3]int{int(f[0]), int(f[1]), int(f[2])}
		m.zones[k] = m.faceZone(verts, f)
	}
	return nil
}

func (m *Mesh) faceZone(verts [][2]float64, f [3]int32) Zone {
	cx := (verts[f[0]][0] + verts[f[1]][0] + verts[f[2]][0]) / 3
	cy := (verts[f[0]][1] + verts[f[1]][1] + verts[f[2]][1]) / 3
	if geometry.PolygonContains(m.interior, geometry.NewPoint2D(cx, cy), 0) {
		return Interior
	}
	return Extension
}

// oversizeEdges returns the keys of edges longer than their zone bound, in
// ascending key order for reproducible refinement.
func oversizeEdges(edges map[EdgeKey]*edgeInfo) (keys []EdgeKey) {
	for key, e := range edges {
		if e.length > e.bound*(1+utils.NODETOL) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return
}

// insertMidpoints appends the midpoint of every oversize edge to the point
// set. A midpoint that falls on a constraint segment splits that segment so
// the constraint survives the next triangulation pass.
func insertMidpoints(verts [][2]float64, segs [][2]int32, split []EdgeKey) (pts [][2]float64, outSegs [][2]int32) {
	segIndex := make(map[EdgeKey]int, len(segs))
	for i, s := range segs {
		segIndex[NewEdgeKey([2]int{int(s[0]), int(s[1])})] = i
	}
	pts = verts
	outSegs = segs
	for _, key := range split {
		vv := key.Vertices()
		mid := [2]float64{
			(verts[vv[0]][0] + verts[vv[1]][0]) / 2,
			(verts[vv[0]][1] + verts[vv[1]][1]) / 2,
		}
		pts = append(pts, mid)
		midID := int32(len(pts) - 1)
		if si, ok := segIndex[key]; ok {
			a := outSegs[si][0]
			b := outSegs[si][1]
			outSegs[si] = [2]int32{a, midID}
			outSegs = append(outSegs, [2]int32{midID, b})
		}
	}
	return
}

// flagBoundaryNodes marks the endpoints of every edge with a single adjacent
// triangle, which on a hole-free triangulation is exactly the outer boundary.
func (m *Mesh) flagBoundaryNodes() {
	verts := make([][2]float64, len(m.nodes))
	for i, p := range m.nodes {
		verts[i] = [2]float64{p.X, p.Y}
	}
	faces := make([][3]int32, len(m.tris))
	for k, t := range m.tris {
		faces[k] = [3]int32{int32(t[0]), int32(t[1]), int32(t[2])}
	}
	edges := buildEdgeMap(verts, faces, func(int) float64 { return math.Inf(1) })
	m.boundaryNode = make([]bool, len(m.nodes))
	for key, e := range edges {
		if e.numTris == 1 {
			vv := key.Vertices()
			m.boundaryNode[vv[0]] = true
			m.boundaryNode[vv[1]] = true
		}
	}
}

func (m *Mesh) Dim() int          { return 2 }
func (m *Mesh) NodeCount() int    { return len(m.nodes) }
func (m *Mesh) ElementCount() int { return len(m.tris) }

// Node returns the location of node i.
func (m *Mesh) Node(i int) geometry.Point { return m.nodes[i] }

// Nodes returns a copy of the node locations.
func (m *Mesh) Nodes() (nodes []geometry.Point) {
	nodes = make([]geometry.Point, len(m.nodes))
	copy(nodes, m.nodes)
	return
}

// Element returns the node indices of triangle k.
func (m *Mesh) Element(k int) [3]int { return m.tris[k] }

// Elements returns a copy of the triangle connectivity table.
func (m *Mesh) Elements() (tris [][3]int) {
	tris = make([][3]int, len(m.tris))
	copy(tris, m.tris)
	return
}

// Zone returns the zone of triangle k.
func (m *Mesh) Zone(k int) Zone { return m.zones[k] }

// IsBoundaryNode reports whether node i lies on the outer mesh boundary.
func (m *Mesh) IsBoundaryNode(i int) bool { return m.boundaryNode[i] }

// InteriorBoundary returns the polygon bounding the region of interest.
func (m *Mesh) InteriorBoundary() []geometry.Point {
	out := make([]geometry.Point, len(m.interior))
	copy(out, m.interior)
	return out
}

// ExtensionBoundary returns the outer ring polygon.
func (m *Mesh) ExtensionBoundary() []geometry.Point {
	out := make([]geometry.Point, len(m.ring))
	copy(out, m.ring)
	return out
}

// LongestEdge returns the longest edge length of triangle k.
func (m *Mesh) LongestEdge(k int) (longest float64) {
	t := m.tris[k]
	for i := 0; i < 3; i++ {
		a, b := m.nodes[t[i]], m.nodes[t[(i+1)%3]]
		if d := math.Sqrt(a.DistanceSq(b)); d > longest {
			longest = d
		}
	}
	return
}

// MaxEdge returns the interior and extension edge length bounds.
func (m *Mesh) MaxEdge() (interior, extension float64) {
	return m.maxEdge, m.maxEdgeExt
}

// Support returns the triangle containing p, the indices of its three nodes,
// and the barycentric weights of p. A location on a shared edge belongs to
// the lowest-indexed triangle containing it. Weights sum to 1.
func (m *Mesh) Support(p geometry.Point) (elem int, nodes utils.Index, weights []float64, found bool) {
	k, l, ok := m.loc.locate(m.nodes, m.tris, p)
	if !ok {
		return
	}
	t := m.tris[k]
	return k, utils.Index{t[0], t[1], t[2]}, []float64{l[0], l[1], l[2]}, true
}
