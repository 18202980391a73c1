// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"fseq/internal/seqmatrix"
)

// Matrix writer registry (format → handler). Writers register from init()
// blocks in their own files.
var matrixWriters = map[string]func(io.Writer, *seqmatrix.Matrix) error{}

// Register installs a writer for a format name (last registration wins).
func Register(format string, fn func(io.Writer, *seqmatrix.Matrix) error) {
	matrixWriters[format] = fn
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(matrixWriters))
	for k := range matrixWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write dispatches a matrix to the registered writer for format.
// Broken-pipe errors are suppressed: a downstream consumer closing early
// (like `head`) is not a failure.
func Write(format string, w io.Writer, m *seqmatrix.Matrix) error {
	fn, ok := matrixWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	if err := fn(w, m); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
