// internal/writers/tsv.go
package writers

import (
	"bufio"
	"io"
	"strconv"

	"fseq/internal/seqmatrix"
)

func init() {
	Register("tsv", writeTSV)
}

func writeTSV(w io.Writer, m *seqmatrix.Matrix) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		for j, v := range row {
			if j > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
