// internal/seqformat/fastq.go
package seqformat

// fastq recognizes 4-line FASTQ records: '@' header, sequence line,
// '+' separator, and a quality line exactly as long as the sequence line.
// Patience decays once per cycle, at the header position.
type fastq struct {
	phase      int
	prevSeqLen int
	patience   int
	given      bool
}

func newFastQ() *fastq {
	return &fastq{patience: defaultPatience}
}

func (f *fastq) Name() string                      { return NameFastQ }
func (f *fastq) RecordLineCount() (int, bool)      { return 4, true }
func (f *fastq) HasSequence() bool                 { return true }
func (f *fastq) HasQuality() bool                  { return true }
func (f *fastq) QualityEncoding() map[byte]float64 { return Phred33() }
func (f *fastq) HeaderLineIndex() int              { return 0 }
func (f *fastq) SequenceLineIndex() int            { return 1 }
func (f *fastq) QualityLineIndex() int             { return 3 }
func (f *fastq) GivenUp() bool                     { return f.given }

func (f *fastq) Expects(line []byte) bool {
	if f.given {
		return false
	}
	if !f.step(line) {
		f.given = true
		return false
	}
	return true
}

func (f *fastq) step(line []byte) bool {
	ok := false
	switch f.phase {
	case 0:
		f.patience--
		if f.patience <= 0 {
			return false
		}
		ok = len(line) > 0 && line[0] == '@'
	case 1:
		ok = isSequenceLine(line)
		f.prevSeqLen = len(line)
	case 2:
		ok = len(line) > 0 && line[0] == '+'
	case 3:
		ok = len(line) == f.prevSeqLen
	}
	f.phase = (f.phase + 1) % 4
	return ok
}

var phred33 = func() map[byte]float64 {
	m := make(map[byte]float64, '~'-'!'+1)
	for c := byte('!'); c <= '~'; c++ {
		m[c] = float64(c-'!') / float64('~'-'!')
	}
	return m
}()

// Phred33 returns the Sanger quality translation table: the printable
// characters '!'..'~' mapped linearly onto [0,1].
func Phred33() map[byte]float64 { return phred33 }
