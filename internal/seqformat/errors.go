// internal/seqformat/errors.go
package seqformat

import "errors"

// Error taxonomy for format detection and binding. All of these abort the
// current source; none is retried.
var (
	// ErrFormatUnknown: the candidate set was exhausted while detecting.
	ErrFormatUnknown = errors.New("sequence format unknown")

	// ErrFormatImplementation: a format or encoder hook was used without
	// being properly implemented, or a settled format is unusable
	// (no fixed record length, no data fields). A programming defect,
	// not a data problem.
	ErrFormatImplementation = errors.New("sequence format implementation fault")

	// ErrFormatIncompatible: the settled format lacks a capability the
	// encoder requires.
	ErrFormatIncompatible = errors.New("sequence format incompatible")
)
