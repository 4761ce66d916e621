package utils

import "strings"

// BoundaryKind selects the boundary treatment at a mesh boundary, consumed by
// the inference engine when it assembles the field precision matrix.
type BoundaryKind uint8

const (
	// BoundaryFree applies no constraint (natural boundary).
	BoundaryFree BoundaryKind = iota

	// BoundaryNeumann constrains the field derivative to zero at the boundary.
	BoundaryNeumann

	// BoundaryDirichlet constrains the field value to zero at the boundary.
	BoundaryDirichlet
)

// String returns the string representation of a BoundaryKind
func (bk BoundaryKind) String() string {
	names := map[BoundaryKind]string{
		BoundaryFree:      "Free",
		BoundaryNeumann:   "Neumann",
		BoundaryDirichlet: "Dirichlet",
	}
	if name, ok := names[bk]; ok {
		return name
	}
	return "Unknown"
}

// ParseBoundaryKind converts a string to a BoundaryKind (case insensitive)
func ParseBoundaryKind(s string) (BoundaryKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free", "natural":
		return BoundaryFree, true
	case "neumann":
		return BoundaryNeumann, true
	case "dirichlet":
		return BoundaryDirichlet, true
	}
	return BoundaryFree, false
}
