package encode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fseq/internal/seqformat"
	"fseq/internal/seqmatrix"
)

func fastaFormat() *seqformat.SettledFormat {
	return &seqformat.SettledFormat{
		Name:              seqformat.NameFastaSingleline,
		RecordLineCount:   2,
		HasSequence:       true,
		HeaderLineIndex:   0,
		SequenceLineIndex: 1,
	}
}

func fastqFormat() *seqformat.SettledFormat {
	return &seqformat.SettledFormat{
		Name:              seqformat.NameFastQ,
		RecordLineCount:   4,
		HasSequence:       true,
		HasQuality:        true,
		QualityEncoding:   seqformat.Phred33(),
		HeaderLineIndex:   0,
		SequenceLineIndex: 1,
		QualityLineIndex:  3,
	}
}

func TestGC_ParseFastaRecord(t *testing.T) {
	e := NewGC()
	require.NoError(t, e.Bind(fastaFormat()))

	m := seqmatrix.New(1, 4, 0.5)
	err := e.Parse([][]byte{[]byte(">h1"), []byte("ACGT")}, m, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 1, 0}, m.Row(0))
}

func TestGC_ShortSequenceLeavesFill(t *testing.T) {
	e := NewGC()
	require.NoError(t, e.Bind(fastaFormat()))

	m := seqmatrix.New(1, 6, 0.5)
	require.NoError(t, e.Parse([][]byte{[]byte(">h"), []byte("GG")}, m, 0))
	require.Equal(t, []float64{1, 1, 0.5, 0.5, 0.5, 0.5}, m.Row(0))
}

func TestGC_LongSequenceTruncates(t *testing.T) {
	e := NewGC()
	require.NoError(t, e.Bind(fastaFormat()))

	m := seqmatrix.New(1, 3, 0)
	require.NoError(t, e.Parse([][]byte{[]byte(">h"), []byte("GGGGGG")}, m, 0))
	require.Equal(t, []float64{1, 1, 1}, m.Row(0))
}

func TestGC_UnmappedSymbolFails(t *testing.T) {
	e := NewGC()
	require.NoError(t, e.Bind(fastaFormat()))

	m := seqmatrix.New(1, 4, 0)
	err := e.Parse([][]byte{[]byte(">h"), []byte("ACXT")}, m, 0)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestGC_ParseUnboundFails(t *testing.T) {
	e := NewGC()
	m := seqmatrix.New(1, 4, 0)
	err := e.Parse([][]byte{[]byte(">h"), []byte("ACGT")}, m, 0)
	require.ErrorIs(t, err, seqformat.ErrFormatImplementation)
}

func TestBase_ItemSizeUnbound(t *testing.T) {
	e := NewGC()
	_, err := e.ItemSize()
	require.ErrorIs(t, err, seqformat.ErrFormatImplementation)

	require.NoError(t, e.Bind(fastaFormat()))
	n, err := e.ItemSize()
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestBase_ParseMustBeProvided(t *testing.T) {
	var b Base
	err := b.Parse(nil, nil, 0)
	require.ErrorIs(t, err, seqformat.ErrFormatImplementation)
}

func TestQuality_BindIncompatibleFormat(t *testing.T) {
	e := NewQuality()
	err := e.Bind(fastaFormat())
	require.ErrorIs(t, err, seqformat.ErrFormatIncompatible)
	require.Nil(t, e.Bound())
}

func TestQuality_AdoptsHintOnDirectBind(t *testing.T) {
	e := NewQuality()
	require.NoError(t, e.Bind(fastqFormat()))
	require.NotNil(t, e.QualityMap())

	m := seqmatrix.New(1, 4, 0)
	rec := [][]byte{[]byte("@r"), []byte("ACGT"), []byte("+"), []byte("!~!~")}
	require.NoError(t, e.Parse(rec, m, 0))
	require.Equal(t, []float64{0, 1, 0, 1}, m.Row(0))
}

func TestQuality_OwnMapWinsOnDirectBind(t *testing.T) {
	own := map[byte]float64{'!': 5, '~': 7}
	e := NewQuality(WithQualityMap(own))
	require.NoError(t, e.Bind(fastqFormat()))

	m := seqmatrix.New(1, 2, 0)
	rec := [][]byte{[]byte("@r"), []byte("AC"), []byte("+"), []byte("!~")}
	require.NoError(t, e.Parse(rec, m, 0))
	require.Equal(t, []float64{5, 7}, m.Row(0))
}

func TestQuality_DetectedHintReplacesOwnMap(t *testing.T) {
	own := map[byte]float64{'!': 5, '~': 7}
	e := NewQuality(WithQualityMap(own))

	lines := []string{"@r1", "ACGT", "+", "IIII", "@r2", "ACGT"}
	var bound bool
	for _, l := range lines {
		var err error
		bound, err = e.FeedDetection([]byte(l))
		require.NoError(t, err)
	}
	require.True(t, bound)
	require.Equal(t, 0.0, e.QualityMap()['!'], "detected hint replaces the caller map")
}

func TestBase_FeedDetectionAfterBindIsNoOp(t *testing.T) {
	e := NewGC()
	require.NoError(t, e.Bind(fastaFormat()))
	bound, err := e.FeedDetection([]byte("garbage 1234"))
	require.NoError(t, err)
	require.True(t, bound)
}

func TestBase_ConcludeDetectionShortInput(t *testing.T) {
	e := NewGC()
	for _, l := range []string{">h1", "ACGT", ">h2", "GGCC"} {
		bound, err := e.FeedDetection([]byte(l))
		require.NoError(t, err)
		require.False(t, bound)
	}
	require.NoError(t, e.ConcludeDetection())
	f := e.Bound()
	require.NotNil(t, f)
	require.Equal(t, seqformat.NameFastaSingleline, f.Name)
}

func TestBase_ConcludeDetectionEmptyInput(t *testing.T) {
	e := NewGC()
	err := e.ConcludeDetection()
	require.ErrorIs(t, err, seqformat.ErrFormatUnknown)
}

func TestBase_Reset(t *testing.T) {
	e := NewGC()
	require.NoError(t, e.Bind(fastaFormat()))
	e.Reset()
	require.Nil(t, e.Bound())

	bound, err := e.FeedDetection([]byte("@r1"))
	require.NoError(t, err)
	require.False(t, bound)
}

func TestBase_ForcedDetectorFactory(t *testing.T) {
	c, err := seqformat.ByName(seqformat.NameFastQ)
	require.NoError(t, err)
	e := NewQuality(WithDetectorFactory(func() *seqformat.Detector {
		return seqformat.NewForced(c)
	}))

	var bound bool
	for _, l := range []string{"@r1", "ACGT", "+", "IIII", "@r2", "ACGT"} {
		bound, err = e.FeedDetection([]byte(l))
		require.NoError(t, err)
	}
	require.True(t, bound)
	require.Equal(t, seqformat.NameFastQ, e.Bound().Name)
}
