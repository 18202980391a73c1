// internal/encode/gc.go
package encode

import (
	"fmt"

	"fseq/internal/seqformat"
	"fseq/internal/seqmatrix"
)

// DefaultGCMap translates nucleotides to their GC contribution:
// G/C → 1, A/T → 0, N and space → 0.5. Case-insensitive.
func DefaultGCMap() map[byte]float64 {
	return map[byte]float64{
		'G': 1, 'g': 1, 'C': 1, 'c': 1,
		'A': 0, 'a': 0, 'T': 0, 't': 0,
		'N': 0.5, 'n': 0.5, ' ': 0.5,
	}
}

// GC encodes the sequence line of each record as per-position GC content.
type GC struct {
	Base
}

// NewGC returns a GC-content encoder with the default sequence map.
func NewGC(opts ...Option) *GC {
	e := &GC{Base: newBase(true, false, opts...)}
	if e.sequenceMap == nil {
		e.sequenceMap = DefaultGCMap()
	}
	return e
}

func (e *GC) Parse(lines [][]byte, out *seqmatrix.Matrix, row int) error {
	f := e.Bound()
	if f == nil {
		return fmt.Errorf("%w: Parse called on an unbound encoder", seqformat.ErrFormatImplementation)
	}
	return translate(lines[f.SequenceLineIndex], e.sequenceMap, out, row)
}
