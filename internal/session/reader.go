// internal/session/reader.go
package session

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"fseq/internal/report"
	"fseq/internal/seqmatrix"
)

// Source pairs an input path with the report directory for its results.
// Target is relative to the source's directory.
type Source struct {
	Path   string
	Target string
}

// Reader drives a session across a queue of sources, distilling reports for
// each completed matrix. Sources are processed sequentially; a fault in one
// source aborts that source only and the run continues with the next.
type Reader struct {
	sess     *Session
	sources  []Source
	builders []report.Builder
	results  []*seqmatrix.Matrix

	// reportDir is where reports for the most recent source went.
	reportDir string
}

// NewReader wraps a session for multi-source runs.
func NewReader(sess *Session) *Reader {
	return &Reader{sess: sess}
}

// AddSource queues an input file. An empty target defaults to a
// "<basename>.reports" directory next to the source.
func (r *Reader) AddSource(path, target string) *Reader {
	if target == "" {
		target = filepath.Base(path) + ".reports"
	}
	r.sources = append(r.sources, Source{Path: path, Target: target})
	return r
}

// AddReportBuilder registers a builder to distill every completed matrix.
func (r *Reader) AddReportBuilder(b report.Builder) *Reader {
	r.builders = append(r.builders, b)
	return r
}

// Len reports the number of queued sources.
func (r *Reader) Len() int { return len(r.sources) }

// Results returns the retained matrices (only kept when Config.KeepResults).
func (r *Reader) Results() []*seqmatrix.Matrix { return r.results }

// ReportDirectory returns the report directory of the last processed source.
func (r *Reader) ReportDirectory() string { return r.reportDir }

// Run processes every queued source in order. The first error is returned
// after all sources have been attempted; context cancellation stops the run
// immediately.
func (r *Reader) Run(ctx context.Context) error {
	if r.sess == nil || r.sess.enc == nil {
		return ErrNoEncoder
	}

	cfg := r.sess.cfg
	var firstErr error
	for i := 0; len(r.sources) > 0 && i < len(r.sources); {
		src := r.sources[i]
		if cfg.PopSources {
			r.sources = r.sources[1:]
		} else {
			i++
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.process(ctx, src); err != nil {
			if ctx.Err() != nil {
				return err
			}
			slog.Error("source failed", "path", src.Path, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Reader) process(ctx context.Context, src Source) error {
	if r.sess.cfg.RedetectPerSource {
		r.sess.enc.Reset()
	}

	rc, err := Open(src.Path)
	if err != nil {
		return err
	}
	m, rerr := r.sess.ReadSource(ctx, rc)
	if cerr := rc.Close(); cerr != nil && rerr == nil {
		rerr = cerr
	}
	if rerr != nil {
		return rerr
	}

	r.reportDir = filepath.Join(filepath.Dir(src.Path), src.Target)
	for _, b := range r.builders {
		if err := b.Distill(m.Dense(), r.reportDir, ""); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	if r.sess.cfg.KeepResults {
		r.results = append(r.results, m)
	}
	slog.Info("source encoded", "path", src.Path, "rows", m.Rows(), "width", m.Width())
	return nil
}
