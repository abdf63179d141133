package cutelog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// ErrorHandler receives write, reopen and close failures of an adapter.
type ErrorHandler func(error)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "cutelog error: %v\n", err) }

// LineOptions configures a LineAdapter.
type LineOptions struct {
	MinLevel     Level
	DateFormat   *DateFormat  // default DefaultDateFormat
	ErrorHandler ErrorHandler // default writes to stderr

	// CloseWriter makes Close close the writer. Leave it unset when the writer
	// belongs to someone else.
	CloseWriter bool
}

// LineAdapter is the default Adapter. It renders each record with AppendLine and
// writes it with a single Write call under a mutex, so lines never interleave.
type LineAdapter struct {
	w        io.Writer
	df       *DateFormat
	onError  ErrorHandler
	owned    bool
	minLevel atomic.Int64

	mu sync.Mutex
	st stats
}

// NewLineAdapter creates a LineAdapter writing to w (os.Stdout when nil).
func NewLineAdapter(w io.Writer, opts LineOptions) *LineAdapter {
	if w == nil {
		w = os.Stdout
	}
	if opts.DateFormat == nil {
		opts.DateFormat = mustDateFormat(DefaultDateFormat)
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = defaultErrorHandler
	}
	a := &LineAdapter{w: w, df: opts.DateFormat, onError: opts.ErrorHandler, owned: opts.CloseWriter}
	a.minLevel.Store(int64(opts.MinLevel))
	return a
}

func (a *LineAdapter) Log(rec Record) {
	if !ShouldLog(rec.Level, Level(a.minLevel.Load())) {
		return
	}
	buf := getBuf()
	defer putBuf(buf)
	buf.b = AppendLine(buf.b, rec, a.df)

	a.mu.Lock()
	_, err := a.w.Write(buf.b)
	a.mu.Unlock()

	if err != nil {
		a.st.loggedErrors.Add(1)
		a.onError(err)
		return
	}
	a.st.written.Add(1)
}

func (a *LineAdapter) SetMinLevel(l Level) { a.minLevel.Store(int64(l)) }

// Reopen reopens the underlying writer when it supports it. Writes are held off
// until the reopen completes.
func (a *LineAdapter) Reopen() error {
	r, ok := a.w.(Reopener)
	if !ok {
		return nil
	}
	a.mu.Lock()
	err := r.Reopen()
	a.mu.Unlock()
	if err != nil {
		a.st.loggedErrors.Add(1)
		return err
	}
	a.st.reopened.Add(1)
	return nil
}

// Close closes the underlying writer when LineOptions.CloseWriter was set. The
// standard streams are never closed.
func (a *LineAdapter) Close() error {
	if !a.owned || a.w == os.Stdout || a.w == os.Stderr {
		return nil
	}
	c, ok := a.w.(io.Closer)
	if !ok {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return c.Close()
}

// Stats returns a snapshot of internal counters.
func (a *LineAdapter) Stats() StatsSnapshot { return a.st.snapshot() }

// ResetStats resets internal counters.
func (a *LineAdapter) ResetStats() { a.st.reset() }
