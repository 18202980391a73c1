// internal/report/registry.go
package report

import "fmt"

// ByName maps a CLI report name to a fresh builder.
func ByName(name string) (Builder, error) {
	switch name {
	case "position-average":
		return NewPositionAverage(), nil
	case "spectrum":
		return NewSpectrum(), nil
	}
	return nil, fmt.Errorf("unknown report %q", name)
}
