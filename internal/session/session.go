// internal/session/session.go
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"fseq/internal/encode"
	"fseq/internal/seqmatrix"
)

// ErrNoEncoder: a session was run without an encoder bound. Checked before
// any I/O happens.
var ErrNoEncoder = errors.New("no encoder assigned")

// allow very long single-line sequences (64 MiB)
const maxLineBytes = 64 << 20

// Config is the tuning surface of a reader session.
type Config struct {
	Workers           int     // worker goroutines (0 = all CPUs)
	InitialRows       int     // row capacity of the initial output buffer
	GrowBy            int     // rows added per growth barrier
	Width             int     // columns retained per record
	Fill              float64 // pre-fill value for untouched cells
	RedetectPerSource bool    // reset the encoder between sources
	PopSources        bool    // consume the source queue while running
	KeepResults       bool    // retain per-source matrices on the reader
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.InitialRows < 1 {
		c.InitialRows = 512
	}
	if c.GrowBy < 1 {
		c.GrowBy = c.InitialRows
	}
	if c.Width < 1 {
		c.Width = 100
	}
	return c
}

// Session runs the per-source pipeline: concurrent format detection, record
// chunking, and a fixed worker pool encoding records into a growable matrix.
type Session struct {
	cfg Config
	enc encode.Encoder
}

// New returns a session encoding through enc.
func New(enc encode.Encoder, cfg Config) *Session {
	return &Session{cfg: cfg.withDefaults(), enc: enc}
}

// Config returns the session's normalized configuration.
func (s *Session) Config() Config { return s.cfg }

type job struct {
	row   int
	lines [][]byte
}

type pool struct {
	jobs chan job
	errc chan error
	wg   sync.WaitGroup
}

// startPool launches the fixed worker set against the current buffer.
// Workers exit on context cancellation, channel close, or a parse fault.
func (s *Session) startPool(ctx context.Context, m *seqmatrix.Matrix) *pool {
	p := &pool{
		jobs: make(chan job, s.cfg.Workers*2),
		errc: make(chan error, s.cfg.Workers),
	}
	p.wg.Add(s.cfg.Workers)
	for w := 0; w < s.cfg.Workers; w++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.jobs:
					if !ok {
						return
					}
					if err := s.enc.Parse(j.lines, m, j.row); err != nil {
						select {
						case p.errc <- err:
						default:
						}
						return
					}
				}
			}
		}()
	}
	return p
}

// drain stops the pool: no more jobs, wait for workers, report the first
// worker error. A pool that never received a job still joins promptly.
func (p *pool) drain() error {
	close(p.jobs)
	p.wg.Wait()
	select {
	case err := <-p.errc:
		return err
	default:
		return nil
	}
}

// run is the per-source dispatch state once the format has settled.
type run struct {
	s        *Session
	ctx      context.Context
	m        *seqmatrix.Matrix
	wp       *pool
	itemSize int
	next     int // next row index, strictly increasing
}

// dispatch hands one complete record to the pool. When the next row would
// exceed capacity it runs the growth barrier: drain all workers, grow the
// buffer, restart a fresh pool. No worker ever observes a resize.
func (r *run) dispatch(lines [][]byte) error {
	if r.next >= r.m.Rows() {
		if err := r.wp.drain(); err != nil {
			r.wp = nil
			return err
		}
		r.m.Grow(r.s.cfg.GrowBy)
		r.wp = r.s.startPool(r.ctx, r.m)
	}
	select {
	case <-r.ctx.Done():
		return r.ctx.Err()
	case err := <-r.wp.errc:
		return err
	case r.wp.jobs <- job{row: r.next, lines: lines}:
	}
	r.next++
	return nil
}

// ReadSource encodes one line-oriented source into a matrix. Detection runs
// concurrently with ingestion; workers start only once a format has settled
// and the record length is known. The returned matrix is truncated to the
// completed rows. Any fault aborts the source: no partial matrix is returned.
func (s *Session) ReadSource(ctx context.Context, rd io.Reader) (*seqmatrix.Matrix, error) {
	if s.enc == nil {
		return nil, ErrNoEncoder
	}

	m := seqmatrix.New(s.cfg.InitialRows, s.cfg.Width, s.cfg.Fill)

	detectCh := make(chan []byte, 64)
	settledCh := make(chan int, 1)
	detectErr := make(chan error, 1)
	detectDone := make(chan struct{})
	go func() {
		defer close(detectDone)
		s.detect(detectCh, settledCh, detectErr)
	}()

	var (
		st       *run
		pending  [][]byte // lines buffered while detecting
		rec      [][]byte // partial record being assembled
		feedOpen = true
	)
	// join ends the feed and waits for the detection goroutine. It must run
	// before every return: the goroutine mutates the shared encoder, and the
	// caller may reuse that encoder on the next source.
	join := func() {
		if feedOpen {
			close(detectCh)
			feedOpen = false
		}
		<-detectDone
	}
	stop := func() {
		join()
		if st != nil && st.wp != nil {
			_ = st.wp.drain()
			st.wp = nil
		}
	}

	// begin opens the worker gate after settling and flushes the lines
	// buffered during detection into complete records.
	begin := func(itemSize int) error {
		st = &run{s: s, ctx: ctx, m: m, itemSize: itemSize}
		st.wp = s.startPool(ctx, m)
		for len(pending) >= itemSize {
			if err := st.dispatch(pending[:itemSize:itemSize]); err != nil {
				return err
			}
			pending = pending[itemSize:]
		}
		rec = append([][]byte(nil), pending...)
		pending = nil
		return nil
	}

	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			stop()
			return nil, err
		}
		line := append([]byte(nil), sc.Bytes()...)
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}

		if st == nil {
			pending = append(pending, line)
			select {
			case detectCh <- line:
			case err := <-detectErr:
				stop()
				return nil, err
			case <-ctx.Done():
				stop()
				return nil, ctx.Err()
			}
			select {
			case err := <-detectErr:
				stop()
				return nil, err
			case itemSize := <-settledCh:
				join()
				if err := begin(itemSize); err != nil {
					stop()
					return nil, err
				}
			default:
			}
			continue
		}

		rec = append(rec, line)
		if len(rec) == st.itemSize {
			if err := st.dispatch(rec); err != nil {
				stop()
				return nil, err
			}
			rec = nil
		}
	}
	if err := sc.Err(); err != nil {
		stop()
		return nil, fmt.Errorf("scan: %w", err)
	}

	if st == nil {
		// input ended while still detecting; ask the detector to conclude.
		// After the join exactly one of the two channels holds a value.
		join()
		select {
		case err := <-detectErr:
			return nil, err
		case itemSize := <-settledCh:
			if err := begin(itemSize); err != nil {
				stop()
				return nil, err
			}
		}
	}

	if len(rec) > 0 {
		// no partial trailing record is emitted
		slog.Debug("dropping partial trailing record", "lines", len(rec))
	}

	err := st.wp.drain()
	st.wp = nil
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.Truncate(st.next)
	slog.Debug("source encoded", "format", s.enc.Bound().Name, "rows", st.next)
	return m, nil
}

// detect pumps buffered lines into the encoder's detector until it settles
// or fails, then drains the channel so the producer never blocks. A feed
// channel closed before settling triggers end-of-input resolution.
func (s *Session) detect(feed <-chan []byte, settled chan<- int, fail chan<- error) {
	report := func() {
		n, err := s.enc.ItemSize()
		if err != nil {
			fail <- err
			return
		}
		settled <- n
	}
	for line := range feed {
		bound, err := s.enc.FeedDetection(line)
		if err != nil {
			fail <- err
		} else if bound {
			report()
		} else {
			continue
		}
		for range feed {
			// discard: the producer may still be sending
		}
		return
	}
	if err := s.enc.ConcludeDetection(); err != nil {
		fail <- err
		return
	}
	report()
}
