package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fseq/internal/version"
)

func writeFasta(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">h1\nACGT\n>h2\nGGCC\n"), 0o644))
	return path
}

func TestRun_EncodesFastaToTSV(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{
		"--sequences", writeFasta(t),
		"--width", "4",
		"--workers", "2",
		"--quiet",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, "0\t1\t1\t0\n1\t1\t1\t1\n", stdout.String())
}

func TestRun_ForcedFastQWithQualityEncoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.fastq")
	require.NoError(t, os.WriteFile(path, []byte("@r1\nAC\n+\n!~\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{
		"--sequences", path,
		"--format", "fastq",
		"--encoder", "quality",
		"--width", "2",
		"--quiet",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Equal(t, "0\t1\n", stdout.String())
}

func TestRun_MatrixOutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "matrix.tsv")
	var stdout, stderr bytes.Buffer
	code := Run([]string{
		"--sequences", writeFasta(t),
		"--width", "4",
		"--matrix-out", out,
		"--quiet",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Empty(t, stdout.String())

	body, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "0\t1\t1\t0\n1\t1\t1\t1\n", string(body))
}

func TestRun_ReportsDistilled(t *testing.T) {
	src := writeFasta(t)
	var stdout, stderr bytes.Buffer
	code := Run([]string{
		"--sequences", src,
		"--width", "4",
		"--reports", "position-average,spectrum",
		"--quiet",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	dir := src + ".reports"
	for _, name := range []string{"position-average.csv", "spectrum.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--version"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Equal(t, "fseq version "+version.Version+"\n", stdout.String())
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"-h"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "Usage of fseq")
}

func TestRun_UsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), "--sequences")
}

func TestRun_ProcessingFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.txt")
	require.NoError(t, os.WriteFile(path, []byte("1234\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--sequences", path, "--quiet"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "format")
}

func TestRun_PartialResultsSurviveLaterFault(t *testing.T) {
	good := writeFasta(t)
	bad := filepath.Join(t.TempDir(), "junk.txt")
	require.NoError(t, os.WriteFile(bad, []byte("1234\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := Run([]string{
		"--sequences", good,
		"--sequences", bad,
		"--width", "4",
		"--quiet",
	}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Equal(t, "0\t1\t1\t0\n1\t1\t1\t1\n", stdout.String())
}
