// internal/encode/quality.go
package encode

import (
	"fmt"

	"fseq/internal/seqformat"
	"fseq/internal/seqmatrix"
)

// Quality encodes the quality line of each record through the quality
// translation map, which is either supplied by the caller or adopted from
// the detected format's hint.
type Quality struct {
	Base
}

// NewQuality returns a quality-score encoder.
func NewQuality(opts ...Option) *Quality {
	return &Quality{Base: newBase(false, true, opts...)}
}

func (e *Quality) Parse(lines [][]byte, out *seqmatrix.Matrix, row int) error {
	f := e.Bound()
	if f == nil {
		return fmt.Errorf("%w: Parse called on an unbound encoder", seqformat.ErrFormatImplementation)
	}
	if e.qualityMap == nil {
		return fmt.Errorf("%w: no quality translation map available", ErrEncoding)
	}
	return translate(lines[f.QualityLineIndex], e.qualityMap, out, row)
}
