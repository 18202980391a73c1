// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"fseq/internal/config"
	"fseq/internal/seqformat"
	"fseq/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles   []string
	ConfigPath string

	// Pipeline
	Workers     int
	Width       int
	InitialRows int
	GrowBy      int
	Fill        float64

	// Format / encoding
	Format  string // auto | fasta | fasta-multiline | fastq
	Encoder string // gc | quality

	// Output
	Output    string // tsv | jsonl | msgpack
	MatrixOut string
	Reports   []string
	ReportDir string

	// Behavior
	NoRedetect  bool
	KeepSources bool
	Quiet       bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: streaming sequence-format detection and numeric encoding

Reads line-oriented sequence files (FASTA, FASTQ, ...), determines the
format while reading, and encodes every record into a fixed-width numeric
matrix row.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
// Values from --config fill in flags not given on the command line.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var seq stringSlice
	fs.Var(&seq, "sequences", "sequence file(s) (repeatable or '-' for stdin) [*]")
	fs.StringVar(&opt.ConfigPath, "config", "", "YAML run configuration []")

	fs.IntVar(&opt.Workers, "workers", 0, "number of worker threads (0 = all CPUs) [0]")
	fs.IntVar(&opt.Width, "width", 100, "matrix columns; longest sequence prefix retained [100]")
	fs.IntVar(&opt.InitialRows, "initial-rows", 512, "initial matrix row capacity [512]")
	fs.IntVar(&opt.GrowBy, "grow-by", 0, "rows added per buffer growth (0 = initial-rows) [0]")
	fs.Float64Var(&opt.Fill, "fill", 0, "pre-fill value for cells past a record's end [0]")

	fs.StringVar(&opt.Format, "format", "auto", "input format: auto | fasta | fasta-multiline | fastq [auto]")
	fs.StringVar(&opt.Encoder, "encoder", "gc", "record encoder: gc | quality [gc]")

	fs.StringVar(&opt.Output, "output", "tsv", "matrix output format: tsv | jsonl | msgpack [tsv]")
	fs.StringVar(&opt.MatrixOut, "matrix-out", "", "write the matrix to this file instead of stdout []")
	var reports string
	fs.StringVar(&reports, "reports", "", "comma-separated reports: position-average,spectrum []")
	fs.StringVar(&opt.ReportDir, "report-dir", "", "report directory relative to each source (default <source>.reports) []")

	fs.BoolVar(&opt.NoRedetect, "no-redetect", false, "assume all sources share the first source's format [false]")
	fs.BoolVar(&opt.KeepSources, "keep-sources", false, "keep sources queued after reading [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress informational logging [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.SeqFiles = seq
	if reports != "" {
		opt.Reports = splitList(reports)
	}

	if opt.ConfigPath != "" {
		cf, err := config.Load(opt.ConfigPath)
		if err != nil {
			return opt, err
		}
		applyConfig(fs, &opt, cf)
	}

	// Validation
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	if opt.Workers < 0 {
		return opt, errors.New("--workers must be ≥ 0")
	}
	if opt.Width < 1 {
		return opt, errors.New("--width must be ≥ 1")
	}
	if opt.InitialRows < 1 {
		return opt, errors.New("--initial-rows must be ≥ 1")
	}
	if opt.GrowBy < 0 {
		return opt, errors.New("--grow-by must be ≥ 0")
	}
	if _, ok := CanonicalFormat(opt.Format); !ok {
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	if opt.Encoder != "gc" && opt.Encoder != "quality" {
		return opt, fmt.Errorf("invalid --encoder %q", opt.Encoder)
	}
	switch opt.Output {
	case "tsv", "jsonl", "msgpack":
	default:
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	for _, r := range opt.Reports {
		if r != "position-average" && r != "spectrum" {
			return opt, fmt.Errorf("invalid report %q", r)
		}
	}
	return opt, nil
}

// CanonicalFormat maps a CLI format name onto the detector's canonical name.
// The empty canonical name means auto-detection.
func CanonicalFormat(name string) (string, bool) {
	switch name {
	case "auto", "":
		return "", true
	case "fasta":
		return seqformat.NameFastaSingleline, true
	case "fasta-multiline":
		return seqformat.NameFastaMultiline, true
	case "fastq":
		return seqformat.NameFastQ, true
	}
	return "", false
}

// applyConfig fills options from the config file for every flag the user
// did not set explicitly.
func applyConfig(fs *flag.FlagSet, opt *Options, cf *config.File) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["sequences"] && len(cf.Sequences) > 0 {
		opt.SeqFiles = cf.Sequences
	}
	if !set["workers"] && cf.Workers != 0 {
		opt.Workers = cf.Workers
	}
	if !set["width"] && cf.Width != 0 {
		opt.Width = cf.Width
	}
	if !set["initial-rows"] && cf.InitialRows != 0 {
		opt.InitialRows = cf.InitialRows
	}
	if !set["grow-by"] && cf.GrowBy != 0 {
		opt.GrowBy = cf.GrowBy
	}
	if !set["fill"] && cf.Fill != 0 {
		opt.Fill = cf.Fill
	}
	if !set["format"] && cf.Format != "" {
		opt.Format = cf.Format
	}
	if !set["encoder"] && cf.Encoder != "" {
		opt.Encoder = cf.Encoder
	}
	if !set["output"] && cf.Output != "" {
		opt.Output = cf.Output
	}
	if !set["matrix-out"] && cf.MatrixOut != "" {
		opt.MatrixOut = cf.MatrixOut
	}
	if !set["reports"] && len(cf.Reports) > 0 {
		opt.Reports = cf.Reports
	}
	if !set["report-dir"] && cf.ReportDir != "" {
		opt.ReportDir = cf.ReportDir
	}
	if !set["no-redetect"] && cf.NoRedetect {
		opt.NoRedetect = true
	}
	if !set["keep-sources"] && cf.KeepSources {
		opt.KeepSources = true
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
