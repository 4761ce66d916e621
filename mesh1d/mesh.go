package mesh1d

import (
	"fmt"
	"math"
	"sort"

	"github.com/spatialfield/fmesher/geometry"
	"github.com/spatialfield/fmesher/utils"
)

// Options controls 1D mesh construction.
type Options struct {
	// Degree selects the basis: 1 for piecewise linear, 2 for piecewise
	// quadratic (B-spline style). Zero defaults to 1.
	Degree int
	// Boundary gives the boundary treatment at the left and right ends.
	Boundary [2]utils.BoundaryKind
	// Cutoff merges input knots closer than this distance into one node.
	Cutoff float64
	// Extend, when positive, pads the domain by this distance beyond the
	// outermost knots so the field is not pinned at the data extremes.
	Extend float64
}

// Mesh is an ordered sequence of knot locations partitioned into interval
// elements, with a piecewise polynomial basis function per node. Immutable
// after construction.
type Mesh struct {
	nodes    []float64
	degree   int
	boundary [2]utils.BoundaryKind
	// lo and hi are the node indices spanning the mesh domain. For degree 2
	// one support knot sits beyond each of them.
	lo, hi int
	nPad   [2]int
}

// New builds a 1D mesh over the given knots. Knots are sorted and
// deduplicated within Options.Cutoff; at least two distinct knots are
// required. For degree 2, one support knot is inserted beyond each end of
// the (padded) domain to carry basis continuity across the boundary.
func New(knots []float64, opts Options) (*Mesh, error) {
	degree := opts.Degree
	if degree == 0 {
		degree = 1
	}
	if degree != 1 && degree != 2 {
		return nil, fmt.Errorf("unsupported basis degree %d, must be 1 or 2", degree)
	}
	if opts.Cutoff < 0 {
		return nil, &utils.ResolutionError{Cutoff: opts.Cutoff, Reason: "cutoff must be non-negative"}
	}
	nodes := dedupSorted(knots, opts.Cutoff)
	if len(nodes) < 2 {
		return nil, &utils.DegenerateInputError{
			Dim:    1,
			Have:   len(nodes),
			Need:   2,
			Reason: "an interval mesh needs two distinct knots after cutoff merging",
		}
	}
	m := &Mesh{
		degree:   degree,
		boundary: opts.Boundary,
	}
	if opts.Extend > 0 {
		nodes = append([]float64{nodes[0] - opts.Extend}, nodes...)
		nodes = append(nodes, nodes[len(nodes)-1]+opts.Extend)
		m.nPad = [2]int{1, 1}
	}
	m.lo, m.hi = 0, len(nodes)-1
	if degree == 2 {
		left := nodes[0] - (nodes[1] - nodes[0])
		n := len(nodes)
		right := nodes[n-1] + (nodes[n-1] - nodes[n-2])
		nodes = append([]float64{left}, nodes...)
		nodes = append(nodes, right)
		m.lo, m.hi = 1, len(nodes)-2
	}
	m.nodes = nodes
	return m, nil
}

func dedupSorted(knots []float64, cutoff float64) (nodes []float64) {
	sorted := make([]float64, len(knots))
	copy(sorted, knots)
	sort.Float64s(sorted)
	for _, x := range sorted {
		if len(nodes) == 0 || x-nodes[len(nodes)-1] > cutoff {
			nodes = append(nodes, x)
		}
	}
	return
}

func (m *Mesh) Dim() int       { return 1 }
func (m *Mesh) Degree() int    { return m.degree }
func (m *Mesh) NodeCount() int { return len(m.nodes) }

// Nodes returns a copy of the node locations, support knots included.
func (m *Mesh) Nodes() (nodes []float64) {
	nodes = make([]float64, len(m.nodes))
	copy(nodes, m.nodes)
	return
}

// ElementCount returns the number of interval elements in the mesh domain.
func (m *Mesh) ElementCount() int { return m.hi - m.lo }

// Interval returns the bounds of element e.
func (m *Mesh) Interval(e int) (x0, x1 float64) {
	return m.nodes[m.lo+e], m.nodes[m.lo+e+1]
}

// Domain returns the extent covered by the mesh elements. Support knots lie
// outside this range.
func (m *Mesh) Domain() (x0, x1 float64) {
	return m.nodes[m.lo], m.nodes[m.hi]
}

// BoundaryKind returns the boundary treatment at end 0 (left) or 1 (right).
func (m *Mesh) BoundaryKind(end int) utils.BoundaryKind {
	return m.boundary[end]
}

// SupportKnots returns how many synthetic continuity-support knots were
// inserted beyond each end of the domain.
func (m *Mesh) SupportKnots() (left, right int) {
	return m.lo, len(m.nodes) - 1 - m.hi
}

// PaddingKnots returns how many padding knots Extend added at each end.
func (m *Mesh) PaddingKnots() (left, right int) {
	return m.nPad[0], m.nPad[1]
}

// IsBoundaryNode reports whether node i sits on the domain boundary.
func (m *Mesh) IsBoundaryNode(i int) bool {
	return i == m.lo || i == m.hi
}

// Support returns the element containing p, the indices of the nodes whose
// basis functions are nonzero at p, and the basis weights. A location exactly
// on a shared knot belongs to the lower-indexed element. Weights sum to 1.
func (m *Mesh) Support(p geometry.Point) (elem int, nodes utils.Index, weights []float64, found bool) {
	var (
		x      = p.X
		x0, x1 = m.Domain()
		tol    = utils.NODETOL * (x1 - x0)
	)
	if math.IsNaN(x) || x < x0-tol || x > x1+tol {
		return
	}
	if x < x0 {
		x = x0
	}
	if x > x1 {
		x = x1
	}
	domain := m.nodes[m.lo : m.hi+1]
	j := sort.SearchFloat64s(domain, x)
	// Ties on a shared knot resolve to the lower-indexed element
	if j > 0 {
		elem = j - 1
	}
	if elem > m.ElementCount()-1 {
		elem = m.ElementCount() - 1
	}
	a, b := m.Interval(elem)
	u := (x - a) / (b - a)
	i := m.lo + elem
	switch m.degree {
	case 1:
		nodes = utils.Index{i, i + 1}
		weights = []float64{1 - u, u}
	case 2:
		// Quadratic blend over the span, one half-weight shared with each
		// neighboring span so the basis is continuous across knots
		nodes = utils.Index{i - 1, i, i + 1}
		weights = []float64{
			(1 - u) * (1 - u) / 2,
			(1 + 2*u - 2*u*u) / 2,
			u * u / 2,
		}
	}
	found = true
	return
}
