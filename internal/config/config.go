// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// File mirrors the command-line surface so recurring runs can be kept in a
// YAML document. Flags given on the command line win over file values.
type File struct {
	Sequences   []string `yaml:"sequences"`
	Workers     int      `yaml:"workers"`
	Width       int      `yaml:"width"`
	InitialRows int      `yaml:"initial_rows"`
	GrowBy      int      `yaml:"grow_by"`
	Fill        float64  `yaml:"fill"`
	Format      string   `yaml:"format"`
	Encoder     string   `yaml:"encoder"`
	Output      string   `yaml:"output"`
	MatrixOut   string   `yaml:"matrix_out"`
	Reports     []string `yaml:"reports"`
	ReportDir   string   `yaml:"report_dir"`
	NoRedetect  bool     `yaml:"no_redetect"`
	KeepSources bool     `yaml:"keep_sources"`
}

// Load parses a YAML run configuration.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &f, nil
}
