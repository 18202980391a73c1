// internal/seqformat/detector.go
package seqformat

import "fmt"

// SettledFormat is the read-only outcome of a detection run.
type SettledFormat struct {
	Name              string
	RecordLineCount   int
	HasSequence       bool
	HasQuality        bool
	QualityEncoding   map[byte]float64
	HeaderLineIndex   int
	SequenceLineIndex int
	QualityLineIndex  int
}

// Detector narrows a live candidate set line by line and settles on a single
// format after a verification window of one full record. The live set only
// shrinks; a detector settles at most once and stays settled.
type Detector struct {
	live      []Candidate
	counting  bool
	countdown int
	settled   *SettledFormat
	fed       bool
}

// NewDetector starts a detection run over every registered format.
func NewDetector() *Detector {
	return &Detector{live: Registry()}
}

// NewForced starts a detection run constrained to a single candidate.
func NewForced(c Candidate) *Detector {
	return &Detector{live: []Candidate{c}}
}

// Detecting reports whether the detector is still narrowing candidates.
func (d *Detector) Detecting() bool { return d.settled == nil }

// Settled returns the committed format, if any.
func (d *Detector) Settled() (*SettledFormat, bool) {
	return d.settled, d.settled != nil
}

// Feed evaluates one line against the live candidate set. Feeding after the
// detector has settled is a no-op.
func (d *Detector) Feed(line []byte) error {
	if d.settled != nil {
		return nil
	}
	d.fed = true

	keep := d.live[:0]
	for _, c := range d.live {
		if c.Expects(line) {
			keep = append(keep, c)
		}
	}
	d.live = keep

	switch len(d.live) {
	case 0:
		return fmt.Errorf("%w: no candidate formats left", ErrFormatUnknown)
	case 1:
		sole := d.live[0]
		if !d.counting {
			// Exercise the sole survivor across one full record
			// before trusting it.
			d.counting = true
			if n, ok := sole.RecordLineCount(); ok {
				d.countdown = n
			}
			return nil
		}
		if d.countdown > 0 {
			d.countdown--
			return nil
		}
		if err := informative(sole); err != nil {
			return err
		}
		d.commit(sole)
	}
	return nil
}

// Conclude resolves detection at end of input: the first live candidate in
// registry order that is informative wins. With no informative candidate
// left the run fails: unknown when nothing matched or nothing was fed,
// implementation fault when a format matched but cannot be used.
func (d *Detector) Conclude() (*SettledFormat, error) {
	if d.settled != nil {
		return d.settled, nil
	}
	if !d.fed {
		return nil, fmt.Errorf("%w: empty input", ErrFormatUnknown)
	}
	var lastFault error
	for _, c := range d.live {
		if err := informative(c); err != nil {
			lastFault = err
			continue
		}
		d.commit(c)
		return d.settled, nil
	}
	if lastFault != nil {
		return nil, lastFault
	}
	return nil, fmt.Errorf("%w: input ended before a format settled", ErrFormatUnknown)
}

// Compatible reports whether the settled format satisfies the caller's
// declared requirements. It fails while the detector is still detecting.
func (d *Detector) Compatible(needSequence, needQuality bool) (bool, error) {
	if d.settled == nil {
		return false, fmt.Errorf("%w: compatibility queried while still detecting", ErrFormatImplementation)
	}
	return (!needSequence || d.settled.HasSequence) &&
		(!needQuality || d.settled.HasQuality), nil
}

func (d *Detector) commit(c Candidate) {
	n, _ := c.RecordLineCount()
	d.settled = &SettledFormat{
		Name:              c.Name(),
		RecordLineCount:   n,
		HasSequence:       c.HasSequence(),
		HasQuality:        c.HasQuality(),
		QualityEncoding:   c.QualityEncoding(),
		HeaderLineIndex:   c.HeaderLineIndex(),
		SequenceLineIndex: c.SequenceLineIndex(),
		QualityLineIndex:  c.QualityLineIndex(),
	}
}

// informative rejects settled-but-unusable formats: a usable format must
// have a fixed record length and at least one data field.
func informative(c Candidate) error {
	if n, ok := c.RecordLineCount(); !ok || n <= 0 {
		return fmt.Errorf("%w: format %s has no fixed record length", ErrFormatImplementation, c.Name())
	}
	if !c.HasSequence() && !c.HasQuality() {
		return fmt.Errorf("%w: format %s has neither sequence nor quality data", ErrFormatImplementation, c.Name())
	}
	return nil
}
