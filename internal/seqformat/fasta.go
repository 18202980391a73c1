// internal/seqformat/fasta.go
package seqformat

// fasta recognizes FASTA-shaped input: '>' header lines alternating with
// sequence lines over the nucleotide or amino-acid alphabet. The same
// cursor drives both variants; the single-record variant additionally
// requires exactly one sequence line between headers and never decays,
// while the multi-line variant spends one unit of patience per header so
// that the stricter single-line grammar can win by elimination.
type fasta struct {
	singleRecord bool
	firstLine    bool
	prevHeader   bool
	patience     int
	given        bool
}

func newFastaSingleline() *fasta {
	return &fasta{singleRecord: true, firstLine: true, patience: defaultPatience}
}

func newFastaMultiline() *fasta {
	return &fasta{firstLine: true, patience: defaultPatience}
}

func (f *fasta) Name() string {
	if f.singleRecord {
		return NameFastaSingleline
	}
	return NameFastaMultiline
}

func (f *fasta) RecordLineCount() (int, bool) {
	if f.singleRecord {
		return 2, true
	}
	return 0, false
}

func (f *fasta) HasSequence() bool                 { return true }
func (f *fasta) HasQuality() bool                  { return false }
func (f *fasta) QualityEncoding() map[byte]float64 { return nil }
func (f *fasta) HeaderLineIndex() int              { return 0 }
func (f *fasta) SequenceLineIndex() int            { return 1 }
func (f *fasta) QualityLineIndex() int             { return -1 }
func (f *fasta) GivenUp() bool                     { return f.given }

func (f *fasta) Expects(line []byte) bool {
	if f.given {
		return false
	}
	if !f.step(line) {
		f.given = true
		return false
	}
	return true
}

func (f *fasta) step(line []byte) bool {
	header := len(line) > 0 && line[0] == '>'

	if f.firstLine {
		f.firstLine = false
		f.prevHeader = header
		return header
	}

	if header {
		if f.prevHeader {
			// two consecutive headers
			return false
		}
		f.prevHeader = true
		if f.singleRecord {
			return true
		}
		f.patience--
		return f.patience > 0
	}

	if f.singleRecord && !f.prevHeader {
		// two consecutive sequence lines
		return false
	}
	f.prevHeader = false
	return isSequenceLine(line)
}
