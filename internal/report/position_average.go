// internal/report/position_average.go
package report

import (
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// PositionAverage reports the mean encoded value at each sequence position.
type PositionAverage struct {
	Name string
}

// NewPositionAverage returns the builder with its default file name.
func NewPositionAverage() *PositionAverage {
	return &PositionAverage{Name: "position-average.csv"}
}

func (p *PositionAverage) Distill(m *mat.Dense, outputRoot, namePrefix string) error {
	if m == nil {
		return nil
	}
	means := columnMeans(m)

	f, err := create(outputRoot, namePrefix, p.Name)
	if err != nil {
		return err
	}
	defer f.Close()

	rows := make([][]string, len(means))
	for i, v := range means {
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
	}
	return writeCSV(f, []string{"position", "mean"}, rows)
}
