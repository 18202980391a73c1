// internal/encode/encoder.go
package encode

import (
	"errors"
	"fmt"
	"log/slog"

	"fseq/internal/seqformat"
	"fseq/internal/seqmatrix"
)

// ErrEncoding: a symbol outside every translation map was met while parsing.
var ErrEncoding = errors.New("symbol encoding fault")

// Encoder converts one record (RecordLineCount raw lines) into one numeric
// row of the output buffer. Parse is called concurrently by workers for
// distinct rows; binding and detection happen before any worker starts.
type Encoder interface {
	// Bind attaches a settled format directly (forced-format path).
	Bind(f *seqformat.SettledFormat) error
	// FeedDetection advances the encoder's internal detector with one
	// line and reports whether the encoder is bound afterwards.
	FeedDetection(line []byte) (bool, error)
	// ConcludeDetection resolves detection at end of input.
	ConcludeDetection() error
	// Reset drops the bound format so the next source re-detects.
	Reset()

	Bound() *seqformat.SettledFormat
	// ItemSize is the record length in lines; it fails before binding.
	ItemSize() (int, error)
	// Needs declares which line roles the encoder requires.
	Needs() (sequence, quality bool)

	Parse(lines [][]byte, out *seqmatrix.Matrix, row int) error
}

// Base carries the state shared by every encoder: the bound format, the
// required line roles, the translation maps and the internal detector.
// Concrete encoders embed it and provide Parse.
type Base struct {
	format      *seqformat.SettledFormat
	detector    *seqformat.Detector
	newDetector func() *seqformat.Detector

	useSequence bool
	useQuality  bool
	sequenceMap map[byte]float64
	qualityMap  map[byte]float64

	// ownQuality marks a caller-supplied quality map, which always wins
	// over a direct bind's hint and is replaced (with a warning) by a
	// detected format's hint.
	ownQuality bool
}

// Option configures an encoder's Base.
type Option func(*Base)

// WithSequenceMap replaces the sequence translation map.
func WithSequenceMap(m map[byte]float64) Option {
	return func(b *Base) { b.sequenceMap = m }
}

// WithQualityMap supplies an explicit quality translation map.
func WithQualityMap(m map[byte]float64) Option {
	return func(b *Base) {
		b.qualityMap = m
		b.ownQuality = m != nil
	}
}

// WithDetectorFactory replaces how the encoder builds its internal
// detector, e.g. to force a single candidate format.
func WithDetectorFactory(f func() *seqformat.Detector) Option {
	return func(b *Base) { b.newDetector = f }
}

func newBase(useSequence, useQuality bool, opts ...Option) Base {
	b := Base{
		useSequence: useSequence,
		useQuality:  useQuality,
		newDetector: seqformat.NewDetector,
	}
	for _, o := range opts {
		o(&b)
	}
	return b
}

func (b *Base) Bound() *seqformat.SettledFormat { return b.format }

func (b *Base) Needs() (sequence, quality bool) { return b.useSequence, b.useQuality }

// SequenceMap returns the active sequence translation map.
func (b *Base) SequenceMap() map[byte]float64 { return b.sequenceMap }

// QualityMap returns the active quality translation map.
func (b *Base) QualityMap() map[byte]float64 { return b.qualityMap }

func (b *Base) ItemSize() (int, error) {
	if b.format == nil {
		return 0, fmt.Errorf("%w: encoder has not been bound to a format", seqformat.ErrFormatImplementation)
	}
	return b.format.RecordLineCount, nil
}

func (b *Base) compatible(f *seqformat.SettledFormat) error {
	if (b.useSequence && !f.HasSequence) || (b.useQuality && !f.HasQuality) {
		return fmt.Errorf("%w: encoder requires information not present in format %s",
			seqformat.ErrFormatIncompatible, f.Name)
	}
	return nil
}

// Bind attaches a forced format. The encoder's own quality map wins over
// the format's hint.
func (b *Base) Bind(f *seqformat.SettledFormat) error {
	if f == nil {
		return fmt.Errorf("%w: nil format bound", seqformat.ErrFormatImplementation)
	}
	if err := b.compatible(f); err != nil {
		return err
	}
	if f.QualityEncoding != nil {
		if b.qualityMap == nil {
			b.qualityMap = f.QualityEncoding
		} else {
			slog.Warn("encoder keeps its own quality encoding over the format hint",
				"format", f.Name)
		}
	}
	b.format = f
	return nil
}

// bindDetected attaches a detected format. A detected hint replaces any
// caller-supplied quality map.
func (b *Base) bindDetected(f *seqformat.SettledFormat) error {
	if err := b.compatible(f); err != nil {
		return err
	}
	if f.QualityEncoding != nil {
		if b.ownQuality {
			slog.Warn("encoder quality encoding replaced by detected format hint",
				"format", f.Name)
		}
		b.qualityMap = f.QualityEncoding
		b.ownQuality = false
	}
	b.format = f
	return nil
}

func (b *Base) FeedDetection(line []byte) (bool, error) {
	if b.format != nil {
		return true, nil
	}
	if b.detector == nil {
		b.detector = b.newDetector()
	}
	if err := b.detector.Feed(line); err != nil {
		return false, err
	}
	if f, ok := b.detector.Settled(); ok {
		return true, b.bindDetected(f)
	}
	return false, nil
}

func (b *Base) ConcludeDetection() error {
	if b.format != nil {
		return nil
	}
	if b.detector == nil {
		b.detector = b.newDetector()
	}
	f, err := b.detector.Conclude()
	if err != nil {
		return err
	}
	return b.bindDetected(f)
}

func (b *Base) Reset() {
	b.format = nil
	b.detector = nil
}

// Parse on the bare Base reports misuse: concrete encoders must provide it.
func (b *Base) Parse([][]byte, *seqmatrix.Matrix, int) error {
	return fmt.Errorf("%w: Parse must be provided by a concrete encoder", seqformat.ErrFormatImplementation)
}

// translate writes line through table into row, left-aligned. Input beyond
// the row width is truncated; cells past the input keep their prior value.
func translate(line []byte, table map[byte]float64, out *seqmatrix.Matrix, row int) error {
	dst := out.Row(row)
	n := len(line)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		v, ok := table[line[i]]
		if !ok {
			return fmt.Errorf("%w: symbol %q has no translation", ErrEncoding, line[i])
		}
		dst[i] = v
	}
	return nil
}
