// internal/report/report.go
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Builder consumes a completed matrix and materializes a report under
// outputRoot. namePrefix is prepended to the builder's file name.
type Builder interface {
	Distill(m *mat.Dense, outputRoot, namePrefix string) error
}

// create opens the report file, making directories on demand.
func create(outputRoot, namePrefix, name string) (*os.File, error) {
	path := filepath.Join(outputRoot, namePrefix+name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func writeCSV(f *os.File, header []string, rows [][]string) error {
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// columnMeans returns the per-position average across all rows.
func columnMeans(m *mat.Dense) []float64 {
	_, cols := m.Dims()
	means := make([]float64, cols)
	var col []float64
	for j := 0; j < cols; j++ {
		col = mat.Col(col, j, m)
		means[j] = stat.Mean(col, nil)
	}
	return means
}
