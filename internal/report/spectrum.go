// internal/report/spectrum.go
package report

import (
	"math/cmplx"
	"strconv"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Spectrum reports the frequency content of the per-position averages:
// the FFT magnitudes of the mean-centered position-average series.
type Spectrum struct {
	Name string
}

// NewSpectrum returns the builder with its default file name.
func NewSpectrum() *Spectrum {
	return &Spectrum{Name: "spectrum.csv"}
}

func (s *Spectrum) Distill(m *mat.Dense, outputRoot, namePrefix string) error {
	if m == nil {
		return nil
	}
	series := columnMeans(m)
	center := stat.Mean(series, nil)
	for i := range series {
		series[i] -= center
	}

	fft := fourier.NewFFT(len(series))
	coeffs := fft.Coefficients(nil, series)

	f, err := create(outputRoot, namePrefix, s.Name)
	if err != nil {
		return err
	}
	defer f.Close()

	rows := make([][]string, len(coeffs))
	for i, c := range coeffs {
		rows[i] = []string{
			strconv.FormatFloat(fft.Freq(i), 'g', -1, 64),
			strconv.FormatFloat(cmplx.Abs(c), 'g', -1, 64),
		}
	}
	return writeCSV(f, []string{"frequency", "magnitude"}, rows)
}
