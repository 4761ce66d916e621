// Package projector builds the sparse linear operator that bridges mesh-node
// coefficients and arbitrary query locations. The same weight structure is
// used in both directions: applied to a coefficient vector it evaluates the
// field at the query locations, transposed it maps location-bound covariate
// data onto node-indexed design-matrix columns for the inference engine.
package projector

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/spatialfield/fmesher/geometry"
	"github.com/spatialfield/fmesher/utils"
)

// Mesh is the capability a mesh must provide for projection: reporting its
// size and resolving a location to the nodes whose basis functions support it.
// Both the 1D and 2D meshes implement it.
type Mesh interface {
	Dim() int
	NodeCount() int
	ElementCount() int
	// Support returns the element containing p, the node indices with
	// nonzero basis weight at p, and the weights. found is false when p is
	// outside the mesh domain.
	Support(p geometry.Point) (elem int, nodes utils.Index, weights []float64, found bool)
}

// Policy selects the treatment of query locations outside the mesh domain.
type Policy uint8

const (
	// FailFast rejects construction with an OutOfDomainError naming the
	// first offending query location.
	FailFast Policy = iota
	// Mask assigns an all-zero weight row; Apply yields NaN at that
	// position and Missing reports it.
	Mask
)

// Triple is one sparse entry of the operator: weight of node Col at query
// row Row.
type Triple struct {
	Row, Col int
	Weight   float64
}

// Projector is an immutable sparse operator from mesh-node coefficients to
// values at a fixed set of query locations. Safe for concurrent use.
type Projector struct {
	a       utils.CSR
	missing utils.Index
	masked  []bool
	nQuery  int
	nNodes  int
}

// New builds a projector for the given query locations. The weight rows of
// in-domain locations sum to 1; each row is supported on one element only,
// located by the mesh's tie-break rule (lowest element index).
func New(m Mesh, query []geometry.Point, policy Policy) (*Projector, error) {
	var (
		nq = len(query)
		nn = m.NodeCount()
	)
	p := &Projector{
		nQuery: nq,
		nNodes: nn,
		masked: make([]bool, nq),
	}
	dok := utils.NewDOK(nq, nn)
	for i, q := range query {
		_, nodes, weights, found := m.Support(q)
		if !found {
			if policy == FailFast {
				return nil, &utils.OutOfDomainError{Query: i, X: q.X, Y: q.Y}
			}
			p.masked[i] = true
			p.missing = append(p.missing, i)
			continue
		}
		for jj, node := range nodes {
			dok.Set(i, node, weights[jj])
		}
	}
	csr := dok.ToCSR()
	p.a = csr.SetReadOnly("projector")
	return p, nil
}

// NumQuery returns the number of query locations.
func (p *Projector) NumQuery() int { return p.nQuery }

// NumNodes returns the mesh node count the operator expects.
func (p *Projector) NumNodes() int { return p.nNodes }

// Missing returns the indices of masked query locations, ascending.
func (p *Projector) Missing() utils.Index { return p.missing.Copy() }

// Apply evaluates a coefficient vector at every query location. Masked
// locations yield NaN. Cost is O(nonzeros), independent of mesh size.
func (p *Projector) Apply(coeffs []float64) (out []float64, err error) {
	if len(coeffs) != p.nNodes {
		return nil, fmt.Errorf("coefficient vector length %d does not match node count %d",
			len(coeffs), p.nNodes)
	}
	var (
		raw = p.a.RawMatrix()
	)
	out = make([]float64, p.nQuery)
	for i := 0; i < p.nQuery; i++ {
		if p.masked[i] {
			out[i] = math.NaN()
			continue
		}
		var sum float64
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			sum += raw.Data[jj] * coeffs[raw.Ind[jj]]
		}
		out[i] = sum
	}
	return
}

// ApplyBatch evaluates several coefficient vectors, one posterior draw per
// row, reusing the operator.
func (p *Projector) ApplyBatch(coeffSets [][]float64) (out [][]float64, err error) {
	out = make([][]float64, len(coeffSets))
	for i, coeffs := range coeffSets {
		if out[i], err = p.Apply(coeffs); err != nil {
			return nil, err
		}
	}
	return
}

// Triples returns the sparse (query, node, weight) entries in row-major
// order, the form the inference engine consumes as a design-matrix block.
func (p *Projector) Triples() (triples []Triple) {
	triples = make([]Triple, 0, p.a.NNZ())
	p.a.DoNonZero(func(i, j int, v float64) {
		triples = append(triples, Triple{Row: i, Col: j, Weight: v})
	})
	return
}

// Matrix exposes the operator as a read-only gonum matrix of dimension
// (queries x nodes); its transpose is the projection direction.
func (p *Projector) Matrix() mat.Matrix { return p.a }
