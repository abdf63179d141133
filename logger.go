package cutelog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
	"go.uber.org/multierr"
)

// Logger gates, formats and forwards log calls to its Adapter. It is safe for
// concurrent use; the threshold is the only state that changes after Build.
type Logger struct {
	adapter  Adapter
	minLevel atomic.Int64
	clock    xclock.Clock
	pid      int
	dest     io.Closer // owned output, may be nil

	// Observers: lock-free reads via atomic.Value; synchronized updates via obsMu.
	// Stored value is []Observer and MUST be treated as immutable by readers.
	observers atomic.Value // holds []Observer
	obsMu     sync.Mutex
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	l := &Logger{
		adapter: cfg.Adapter,
		clock:   cfg.Clock,
		pid:     os.Getpid(),
		dest:    cfg.Destination,
	}
	l.minLevel.Store(int64(cfg.MinLevel))
	if len(cfg.Observers) > 0 {
		obs := make([]Observer, len(cfg.Observers))
		copy(obs, cfg.Observers)
		l.observers.Store(obs)
	} else {
		l.observers.Store(([]Observer)(nil))
	}
	return l
}

// Enabled reports whether logs at 'level' would be emitted by this logger.
func (l *Logger) Enabled(level Level) bool {
	return ShouldLog(level, l.MinLevel())
}

// MinLevel returns the current threshold.
func (l *Logger) MinLevel() Level {
	return Level(l.minLevel.Load())
}

// SetMinLevel changes the threshold for subsequent calls and propagates it to
// the adapter when supported. Calls already past the gate are not affected.
func (l *Logger) SetMinLevel(level Level) {
	l.minLevel.Store(int64(level))
	if ls, ok := l.adapter.(adapterLevelSetter); ok {
		ls.SetMinLevel(level)
	}
}

// SetSeverity parses a severity name and makes it the threshold.
func (l *Logger) SetSeverity(text string) error {
	level, err := ParseLevel(text)
	if err != nil {
		return err
	}
	l.SetMinLevel(level)
	return nil
}

// Adapter returns the backend the logger writes to.
func (l *Logger) Adapter() Adapter { return l.adapter }

// Log formats args and emits them when level passes the threshold.
// One argument is written unwrapped, several as a JSON array.
func (l *Logger) Log(level Level, label string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.emit(level, label, Format(args...))
}

// LogFunc calls producer only when level passes the threshold, synchronously
// and exactly once, and emits its result. Use it when building the payload is
// expensive. label always names the record; there is no per-call override.
func (l *Logger) LogFunc(level Level, label string, producer func() any) {
	if !l.Enabled(level) {
		return
	}
	var v any
	if producer != nil {
		v = producer()
	}
	l.emit(level, label, FormatPayload(v))
}

func (l *Logger) Debug(label string, args ...any) { l.Log(LevelDebug, label, args...) }
func (l *Logger) Info(label string, args ...any)  { l.Log(LevelInfo, label, args...) }
func (l *Logger) Warn(label string, args ...any)  { l.Log(LevelWarn, label, args...) }
func (l *Logger) Error(label string, args ...any) { l.Log(LevelError, label, args...) }

// Fatal logs at LevelFatal. It does not exit the process.
func (l *Logger) Fatal(label string, args ...any) { l.Log(LevelFatal, label, args...) }

func (l *Logger) DebugFunc(label string, fn func() any) { l.LogFunc(LevelDebug, label, fn) }
func (l *Logger) InfoFunc(label string, fn func() any)  { l.LogFunc(LevelInfo, label, fn) }
func (l *Logger) WarnFunc(label string, fn func() any)  { l.LogFunc(LevelWarn, label, fn) }
func (l *Logger) ErrorFunc(label string, fn func() any) { l.LogFunc(LevelError, label, fn) }
func (l *Logger) FatalFunc(label string, fn func() any) { l.LogFunc(LevelFatal, label, fn) }

func (l *Logger) AddObserver(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	cur := l.snapshotObservers()
	cur = append(cur, o)
	l.observers.Store(cur)
}

func (l *Logger) snapshotObservers() []Observer {
	v := l.observers.Load()
	if v == nil {
		return nil
	}
	cur := v.([]Observer)
	if len(cur) == 0 {
		return nil
	}
	out := make([]Observer, len(cur))
	copy(out, cur)
	return out
}

// Reopen reopens the output: through the adapter when it can, otherwise
// through the owned destination. With neither it is a no-op.
func (l *Logger) Reopen() error {
	if r, ok := l.adapter.(Reopener); ok {
		return r.Reopen()
	}
	if r, ok := l.dest.(Reopener); ok {
		return r.Reopen()
	}
	return nil
}

// Close closes the adapter when it is an io.Closer, then the owned destination.
func (l *Logger) Close() error {
	var err error
	if c, ok := l.adapter.(io.Closer); ok {
		err = multierr.Append(err, c.Close())
	}
	if l.dest != nil {
		err = multierr.Append(err, l.dest.Close())
	}
	return err
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

func (l *Logger) emit(level Level, label, msg string) {
	// Single authoritative timestamp, taken with the rest of the record.
	rec := Record{
		At:          l.now(),
		Level:       level,
		PID:         l.pid,
		GoroutineID: goroutineID(),
		Label:       SafeString(label),
		Message:     msg,
	}

	l.adapter.Log(rec)

	v := l.observers.Load()
	if v == nil {
		return
	}
	for _, o := range v.([]Observer) {
		o.OnLog(rec)
	}
}

// Named is a Logger view with a fixed label.
type Named struct {
	l     *Logger
	label string
}

// Named returns a view of l that logs every record under label.
func (l *Logger) Named(label string) Named {
	return Named{l: l, label: label}
}

// Label returns the bound label.
func (n Named) Label() string { return n.label }

func (n Named) Enabled(level Level) bool { return n.l.Enabled(level) }

func (n Named) Log(level Level, args ...any)       { n.l.Log(level, n.label, args...) }
func (n Named) LogFunc(level Level, fn func() any) { n.l.LogFunc(level, n.label, fn) }
func (n Named) Debug(args ...any)                  { n.l.Log(LevelDebug, n.label, args...) }
func (n Named) Info(args ...any)                   { n.l.Log(LevelInfo, n.label, args...) }
func (n Named) Warn(args ...any)                   { n.l.Log(LevelWarn, n.label, args...) }
func (n Named) Error(args ...any)                  { n.l.Log(LevelError, n.label, args...) }
func (n Named) Fatal(args ...any)                  { n.l.Log(LevelFatal, n.label, args...) }
func (n Named) DebugFunc(fn func() any)            { n.l.LogFunc(LevelDebug, n.label, fn) }
func (n Named) InfoFunc(fn func() any)             { n.l.LogFunc(LevelInfo, n.label, fn) }
func (n Named) WarnFunc(fn func() any)             { n.l.LogFunc(LevelWarn, n.label, fn) }
func (n Named) ErrorFunc(fn func() any)            { n.l.LogFunc(LevelError, n.label, fn) }
func (n Named) FatalFunc(fn func() any)            { n.l.LogFunc(LevelFatal, n.label, fn) }

