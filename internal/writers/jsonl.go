// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"

	"fseq/internal/seqmatrix"
)

func init() {
	Register("jsonl", writeJSONL)
}

// writeJSONL emits one JSON array per matrix row.
func writeJSONL(w io.Writer, m *seqmatrix.Matrix) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	enc := json.NewEncoder(bw)
	for i := 0; i < m.Rows(); i++ {
		if err := enc.Encode(m.Row(i)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
