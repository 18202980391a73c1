// internal/writers/msgpack.go
package writers

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"fseq/internal/seqmatrix"
)

func init() {
	Register("msgpack", writeMsgpack)
}

// Payload is the stable binary layout of an encoded matrix.
type Payload struct {
	Rows  int       `msgpack:"rows"`
	Width int       `msgpack:"width"`
	Data  []float64 `msgpack:"data"`
}

func writeMsgpack(w io.Writer, m *seqmatrix.Matrix) error {
	return msgpack.NewEncoder(w).Encode(Payload{
		Rows:  m.Rows(),
		Width: m.Width(),
		Data:  m.Values(),
	})
}
