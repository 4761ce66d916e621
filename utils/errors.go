package utils

import "fmt"

// DegenerateInputError reports too few distinct locations to support a mesh,
// or a point set without areal extent in 2D.
type DegenerateInputError struct {
	Dim    int
	Have   int
	Need   int
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input for %dD mesh: have %d distinct locations, need %d (%s)",
		e.Dim, e.Have, e.Need, e.Reason)
}

// InvalidBoundaryError reports an explicit boundary polygon that does not
// enclose all anchor locations, or one that is not a valid simple polygon.
type InvalidBoundaryError struct {
	Reason string
}

func (e *InvalidBoundaryError) Error() string {
	return fmt.Sprintf("invalid boundary: %s", e.Reason)
}

// ResolutionError reports an unsatisfiable resolution specification, such as
// a maximum edge length below the duplicate-merge cutoff.
type ResolutionError struct {
	MaxEdge float64
	Cutoff  float64
	Reason  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unsatisfiable resolution: %s (max edge %g, cutoff %g)",
		e.Reason, e.MaxEdge, e.Cutoff)
}

// OutOfDomainError reports a query location outside the mesh domain under the
// fail-fast policy. Query is the index of the offending location.
type OutOfDomainError struct {
	Query int
	X, Y  float64
}

func (e *OutOfDomainError) Error() string {
	return fmt.Sprintf("query location %d (%g,%g) is outside the mesh domain", e.Query, e.X, e.Y)
}
