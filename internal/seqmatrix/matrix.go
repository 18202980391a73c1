// internal/seqmatrix/matrix.go
package seqmatrix

import "gonum.org/v1/gonum/mat"

// Matrix is the growable row-major output buffer encoders write into.
// It is not self-synchronizing: concurrent writers must target distinct
// rows, and Grow/Truncate require exclusive access (the session enforces
// this with a drain barrier).
type Matrix struct {
	rows  int
	width int
	fill  float64
	data  []float64
}

// New allocates a rows×width matrix pre-filled with fill.
func New(rows, width int, fill float64) *Matrix {
	m := &Matrix{rows: rows, width: width, fill: fill}
	m.data = m.filled(rows * width)
	return m
}

func (m *Matrix) filled(n int) []float64 {
	d := make([]float64, n)
	if m.fill != 0 {
		for i := range d {
			d[i] = m.fill
		}
	}
	return d
}

func (m *Matrix) Rows() int     { return m.rows }
func (m *Matrix) Width() int    { return m.width }
func (m *Matrix) Fill() float64 { return m.fill }

// Row returns the writable backing slice for row i.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.width : (i+1)*m.width]
}

// Grow adds extra pre-filled rows by allocating a larger backing array and
// copying the existing rows over.
func (m *Matrix) Grow(extra int) {
	if extra <= 0 {
		return
	}
	next := m.filled((m.rows + extra) * m.width)
	copy(next, m.data)
	m.data = next
	m.rows += extra
}

// Truncate discards unused trailing row capacity.
func (m *Matrix) Truncate(rows int) {
	if rows < 0 || rows >= m.rows {
		return
	}
	m.data = m.data[:rows*m.width]
	m.rows = rows
}

// Values returns the row-major backing data. Shared, not a copy.
func (m *Matrix) Values() []float64 { return m.data }

// Dense returns a gonum view of the matrix for statistical consumers,
// or nil for an empty matrix.
func (m *Matrix) Dense() *mat.Dense {
	if m.rows == 0 || m.width == 0 {
		return nil
	}
	return mat.NewDense(m.rows, m.width, m.data)
}
