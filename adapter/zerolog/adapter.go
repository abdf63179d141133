package zerologadapter

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/cutelog"
)

// Adapter bridges cutelog to rs/zerolog.
//
// Records are written with the label as message, the fields ts, severity, pid
// and tid, and the formatted payload embedded as raw JSON under "payload".
// A level pre-check avoids allocating a zerolog.Event when disabled.
type Adapter struct {
	l   zerolog.Logger
	df  *cutelog.DateFormat // optional; RFC3339Nano when nil
	min *atomic.Int32       // zerolog.Level; shared with copies
}

func New(l zerolog.Logger) *Adapter {
	a := &Adapter{l: l, min: new(atomic.Int32)}
	a.min.Store(int32(l.GetLevel()))
	return a
}

// WithDateFormat returns a copy that renders "ts" with df.
func (a *Adapter) WithDateFormat(df *cutelog.DateFormat) *Adapter {
	child := *a
	child.df = df
	return &child
}

// Log emits a single entry.
// Fatal is treated as error level to avoid os.Exit side-effects.
func (a *Adapter) Log(rec cutelog.Record) {
	zlvl := mapLevel(rec.Level)

	// Fast path: drop early if below logger's min level (no Event allocation).
	if zlvl < zerolog.Level(a.min.Load()) || zlvl < a.l.GetLevel() {
		return
	}

	ev := a.l.WithLevel(zlvl)
	if a.df != nil {
		ev.Str("ts", a.df.Format(rec.At))
	} else {
		ev.Str("ts", rec.At.UTC().Format(time.RFC3339Nano))
	}
	ev.Str("severity", rec.Level.String()).
		Str("pid", strconv.FormatInt(int64(rec.PID), 16)).
		Str("tid", strconv.FormatUint(rec.GoroutineID, 16)).
		RawJSON("payload", []byte(rec.Message)).
		Msg(rec.Label)
}

// SetMinLevel lets the Logger propagate its threshold into the adapter
// (optional interface). It is safe to call while logging.
func (a *Adapter) SetMinLevel(l cutelog.Level) {
	a.min.Store(int32(mapLevel(l)))
}

// mapLevel converts cutelog.Level to zerolog.Level.
// cutelog.LevelFatal is mapped to Error to avoid zerolog.Fatal() (which would exit the process).
func mapLevel(l cutelog.Level) zerolog.Level {
	switch {
	case l <= cutelog.LevelDebug:
		return zerolog.DebugLevel
	case l <= cutelog.LevelInfo:
		return zerolog.InfoLevel
	case l <= cutelog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
