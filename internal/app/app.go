// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fseq/internal/cli"
	"fseq/internal/encode"
	"fseq/internal/report"
	"fseq/internal/seqformat"
	"fseq/internal/session"
	"fseq/internal/version"
	"fseq/internal/writers"
)

// Exit codes: 0 ok, 1 processing fault, 2 usage, 3 output error.

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	flush := func() int {
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	fs := cli.NewFlagSet("fseq")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flush()
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if code := flush(); code != 0 {
			return code
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "fseq version %s\n", version.Version)
		return flush()
	}

	level := slog.LevelInfo
	if opts.Quiet {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	enc, err := buildEncoder(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	sess := session.New(enc, session.Config{
		Workers:           opts.Workers,
		InitialRows:       opts.InitialRows,
		GrowBy:            opts.GrowBy,
		Width:             opts.Width,
		Fill:              opts.Fill,
		RedetectPerSource: !opts.NoRedetect,
		PopSources:        !opts.KeepSources,
		KeepResults:       true,
	})
	rdr := session.NewReader(sess)
	for _, p := range opts.SeqFiles {
		rdr.AddSource(p, opts.ReportDir)
	}
	for _, name := range opts.Reports {
		b, err := report.ByName(name)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		rdr.AddReportBuilder(b)
	}

	runErr := rdr.Run(parent)

	// Write whatever completed even when a later source failed.
	var mw io.Writer = outw
	if opts.MatrixOut != "" {
		f, err := os.Create(opts.MatrixOut)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() { _ = f.Close() }()
		mw = f
	}
	for _, m := range rdr.Results() {
		if err := writers.Write(opts.Output, mw, m); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	if runErr != nil {
		_, _ = fmt.Fprintln(stderr, runErr)
		return 1
	}
	return flush()
}

func buildEncoder(opts cli.Options) (encode.Encoder, error) {
	var encOpts []encode.Option
	if canonical, _ := cli.CanonicalFormat(opts.Format); canonical != "" {
		name := canonical
		encOpts = append(encOpts, encode.WithDetectorFactory(func() *seqformat.Detector {
			c, _ := seqformat.ByName(name)
			return seqformat.NewForced(c)
		}))
	}
	switch opts.Encoder {
	case "gc":
		return encode.NewGC(encOpts...), nil
	case "quality":
		return encode.NewQuality(encOpts...), nil
	}
	return nil, fmt.Errorf("invalid encoder %q", opts.Encoder)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
