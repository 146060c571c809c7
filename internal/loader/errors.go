package loader

import "errors"

// Sentinel errors for the edge loader, following the teacher's convention of
// exported Err* values declared once per package (services/trace/graph/errors.go).
var (
	// ErrEdgeFileNotFound is returned when the input path cannot be opened
	// or memory-mapped; mmapfile's underlying error is wrapped onto it.
	ErrEdgeFileNotFound = errors.New("loader: edge file not found")
)
