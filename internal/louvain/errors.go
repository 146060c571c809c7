package louvain

import "errors"

// Sentinel errors for the Louvain engine.
var (
	// ErrZeroTotalDegree is returned when a non-empty graph has zero total
	// degree, which would make the modularity gain formula divide by zero.
	// The edge loader never produces such a graph for a non-empty input.
	ErrZeroTotalDegree = errors.New("louvain: graph has zero total degree")
)
