// internal/seqformat/format.go
package seqformat

import (
	"fmt"
	"regexp"
)

// Candidate is a stateful recognizer for one wire format. Expects consumes
// one line at a time and mutates the candidate's cursor state; once it has
// returned false the candidate has given up and every later call returns
// false as well.
type Candidate interface {
	Name() string
	Expects(line []byte) bool
	GivenUp() bool

	// RecordLineCount reports the fixed number of lines per record;
	// ok is false when the format has no fixed record length.
	RecordLineCount() (n int, ok bool)
	HasSequence() bool
	HasQuality() bool
	// QualityEncoding returns the format's quality translation hint,
	// or nil when the format carries none.
	QualityEncoding() map[byte]float64

	// Line-role indices within one record; -1 when the role is absent.
	HeaderLineIndex() int
	SequenceLineIndex() int
	QualityLineIndex() int
}

// Canonical format names.
const (
	NameFastaSingleline = "FASTA:SINGLELINE"
	NameFastaMultiline  = "FASTA:MULTILINE"
	NameFastQ           = "FASTQ"
)

// defaultPatience bounds how long a broad grammar keeps matching before it
// self-rejects so a stricter subset grammar can win by elimination.
const defaultPatience = 20

var (
	matchNT = regexp.MustCompile(`^[ACGTacgt]+$`)
	matchAA = regexp.MustCompile(`^[A-Za-z]+$`)
)

func isSequenceLine(line []byte) bool {
	return matchNT.Match(line) || matchAA.Match(line)
}

// Registry returns fresh candidate instances for every supported format, in
// strictness order: subset grammars come before the grammars that contain
// them so end-of-input resolution prefers the narrower match.
func Registry() []Candidate {
	return []Candidate{
		newFastaSingleline(),
		newFastaMultiline(),
		newFastQ(),
	}
}

// ByName returns a fresh candidate for a canonical format name.
func ByName(name string) (Candidate, error) {
	for _, c := range Registry() {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no format named %q", ErrFormatUnknown, name)
}
