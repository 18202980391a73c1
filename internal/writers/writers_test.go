package writers

import (
	"bytes"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"fseq/internal/seqmatrix"
)

func sample() *seqmatrix.Matrix {
	m := seqmatrix.New(2, 3, 0)
	copy(m.Row(0), []float64{0, 1, 0.5})
	copy(m.Row(1), []float64{1, 1, 1})
	return m
}

func TestFormats(t *testing.T) {
	require.Equal(t, []string{"jsonl", "msgpack", "tsv"}, Formats())
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write("parquet", io.Discard, sample())
	require.Error(t, err)
	require.Contains(t, err.Error(), "parquet")
}

func TestWrite_TSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write("tsv", &buf, sample()))
	require.Equal(t, "0\t1\t0.5\n1\t1\t1\n", buf.String())
}

func TestWrite_JSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write("jsonl", &buf, sample()))
	require.Equal(t, "[0,1,0.5]\n[1,1,1]\n", buf.String())
}

func TestWrite_MsgpackRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write("msgpack", &buf, sample()))

	var p Payload
	require.NoError(t, msgpack.NewDecoder(&buf).Decode(&p))
	require.Equal(t, 2, p.Rows)
	require.Equal(t, 3, p.Width)
	require.Equal(t, []float64{0, 1, 0.5, 1, 1, 1}, p.Data)
}

func TestWrite_EmptyMatrix(t *testing.T) {
	m := seqmatrix.New(0, 4, 0)
	var buf bytes.Buffer
	require.NoError(t, Write("tsv", &buf, m))
	require.Empty(t, buf.String())
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWrite_SuppressesBrokenPipe(t *testing.T) {
	require.NoError(t, Write("tsv", failWriter{err: syscall.EPIPE}, sample()))
	require.NoError(t, Write("msgpack", failWriter{err: io.ErrClosedPipe}, sample()))
	require.Error(t, Write("tsv", failWriter{err: io.ErrShortWrite}, sample()))
}

func TestIsBrokenPipe(t *testing.T) {
	require.True(t, IsBrokenPipe(syscall.EPIPE))
	require.True(t, IsBrokenPipe(io.ErrClosedPipe))
	require.False(t, IsBrokenPipe(nil))
	require.False(t, IsBrokenPipe(io.EOF))
}
