package utils

const (
	// NODETOL is the tolerance used when comparing node coordinates and
	// basis weights against exact values.
	NODETOL = 1.e-12
)
