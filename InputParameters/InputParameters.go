package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/spatialfield/fmesher/geometry"
	"github.com/spatialfield/fmesher/mesh1d"
	"github.com/spatialfield/fmesher/mesh2d"
	"github.com/spatialfield/fmesher/projector"
	"github.com/spatialfield/fmesher/utils"
)

// Parameters obtained from the YAML job file
type MeshParameters struct {
	Title            string      `yaml:"Title"`
	Dimension        int         `yaml:"Dimension"`
	Knots            []float64   `yaml:"Knots"`
	Locations        [][]float64 `yaml:"Locations"`
	Boundary         [][]float64 `yaml:"Boundary"`
	Degree           int         `yaml:"Degree"`
	BoundaryKind     []string    `yaml:"BoundaryKind"` // 1D: left and right end treatment
	MaxEdge          float64     `yaml:"MaxEdge"`
	MaxEdgeExtension float64     `yaml:"MaxEdgeExtension"`
	Cutoff           float64     `yaml:"Cutoff"`
	Offset           float64     `yaml:"Offset"`
	Concave          float64     `yaml:"Concave"`
	Extend           float64     `yaml:"Extend"`
	Queries          [][]float64 `yaml:"Queries"`
	Coefficients     []float64   `yaml:"Coefficients"`
	OutOfDomain      string      `yaml:"OutOfDomain"` // "fail" (default) or "mask"
}

func (ip *MeshParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *MeshParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Dimension\n", ip.Dimension)
	switch ip.Dimension {
	case 1:
		fmt.Printf("[%d]\t\t\t= Knots\n", len(ip.Knots))
		fmt.Printf("[%d]\t\t\t= Degree\n", ip.Degree)
		fmt.Printf("%v\t= BoundaryKind\n", ip.BoundaryKind)
	case 2:
		fmt.Printf("[%d]\t\t\t= Locations\n", len(ip.Locations))
		fmt.Printf("%8.5f\t\t= MaxEdge\n", ip.MaxEdge)
		fmt.Printf("%8.5f\t\t= MaxEdgeExtension\n", ip.MaxEdgeExtension)
		fmt.Printf("%8.5f\t\t= Offset\n", ip.Offset)
	}
	fmt.Printf("%8.5f\t\t= Cutoff\n", ip.Cutoff)
	fmt.Printf("[%d]\t\t\t= Queries\n", len(ip.Queries))
}

// Mesh1DOptions maps the job file onto 1D mesh construction inputs.
func (ip *MeshParameters) Mesh1DOptions() (knots []float64, opts mesh1d.Options, err error) {
	if len(ip.Knots) == 0 {
		err = fmt.Errorf("a 1D job needs Knots")
		return
	}
	knots = ip.Knots
	opts = mesh1d.Options{
		Degree: ip.Degree,
		Cutoff: ip.Cutoff,
		Extend: ip.Extend,
	}
	for i, name := range ip.BoundaryKind {
		if i > 1 {
			err = fmt.Errorf("BoundaryKind takes at most two entries, have %d", len(ip.BoundaryKind))
			return
		}
		kind, ok := utils.ParseBoundaryKind(name)
		if !ok {
			err = fmt.Errorf("unknown boundary kind %q", name)
			return
		}
		opts.Boundary[i] = kind
	}
	return
}

// Mesh2DOptions maps the job file onto 2D mesh construction inputs.
func (ip *MeshParameters) Mesh2DOptions() (locs []geometry.Point, opts mesh2d.Options, err error) {
	if len(ip.Locations) == 0 {
		err = fmt.Errorf("a 2D job needs Locations")
		return
	}
	if locs, err = toPoints(ip.Locations); err != nil {
		return
	}
	opts = mesh2d.Options{
		MaxEdge:    ip.MaxEdge,
		MaxEdgeExt: ip.MaxEdgeExtension,
		Cutoff:     ip.Cutoff,
		Offset:     ip.Offset,
		Concave:    ip.Concave,
	}
	if len(ip.Boundary) > 0 {
		if opts.Boundary, err = toPoints(ip.Boundary); err != nil {
			return
		}
	}
	return
}

// QueryPoints returns the query locations in the job's dimension.
func (ip *MeshParameters) QueryPoints() (pts []geometry.Point, err error) {
	if ip.Dimension == 1 {
		pts = make([]geometry.Point, len(ip.Queries))
		for i, q := range ip.Queries {
			if len(q) != 1 {
				return nil, fmt.Errorf("query %d has %d coordinates, want 1", i, len(q))
			}
			pts[i] = geometry.NewPoint1D(q[0])
		}
		return
	}
	return toPoints(ip.Queries)
}

// Policy returns the out-of-domain policy selected by the job.
func (ip *MeshParameters) Policy() (projector.Policy, error) {
	switch ip.OutOfDomain {
	case "", "fail":
		return projector.FailFast, nil
	case "mask":
		return projector.Mask, nil
	}
	return projector.FailFast, fmt.Errorf("unknown OutOfDomain policy %q, want fail or mask", ip.OutOfDomain)
}

func toPoints(coords [][]float64) (pts []geometry.Point, err error) {
	pts = make([]geometry.Point, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("location %d has %d coordinates, want 2", i, len(c))
		}
		pts[i] = geometry.NewPoint2D(c[0], c[1])
	}
	return
}
