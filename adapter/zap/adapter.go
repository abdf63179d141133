package zapadapter

import (
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/cutelog"
)

// Adapter bridges cutelog to go.uber.org/zap.
//
// Each record becomes one zap entry whose message is the record label, with
// the fields ts, severity, pid, tid and payload. The payload is spliced in as
// raw JSON, so the formatted message keeps its shape.
//
// Optional behavior:
//   - SetMinLevel leverages zap.AtomicLevel when provided at construction time
//     to adjust backend filtering to match the Logger threshold. If no AtomicLevel
//     is provided, SetMinLevel is a no-op (cutelog filtering still applies).
type Adapter struct {
	l     *zap.Logger
	al    *zap.AtomicLevel    // optional, enables SetMinLevel
	tsKey string              // timestamp field key; default "ts"
	df    *cutelog.DateFormat // optional; RFC3339Nano when nil
}

// New creates an adapter for the provided zap logger.
func New(l *zap.Logger) *Adapter {
	return NewWithAtomicLevel(l, nil)
}

// NewWithAtomicLevel creates an adapter and wires a zap.AtomicLevel so
// SetMinLevel can dynamically adjust the backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{l: l, al: al, tsKey: "ts"}
}

// WithDateFormat returns a copy that renders "ts" with df instead of RFC3339Nano.
func (a *Adapter) WithDateFormat(df *cutelog.DateFormat) *Adapter {
	child := *a
	child.df = df
	return &child
}

// WithTimestampKey returns a copy using key for the timestamp field.
func (a *Adapter) WithTimestampKey(key string) *Adapter {
	child := *a
	if key != "" {
		child.tsKey = key
	}
	return &child
}

// Log emits a single entry. LevelFatal maps to Error to avoid os.Exit in
// library code; the "severity" field keeps the original name.
func (a *Adapter) Log(rec cutelog.Record) {
	// Fast path: skip if disabled. Avoids building fields.
	ce := a.l.Check(toZapLevel(rec.Level), rec.Label)
	if ce == nil {
		return
	}
	ce.Write(
		zap.String(a.tsKey, a.timestamp(rec.At)),
		zap.String("severity", rec.Level.String()),
		zap.String("pid", strconv.FormatInt(int64(rec.PID), 16)),
		zap.String("tid", strconv.FormatUint(rec.GoroutineID, 16)),
		zap.Reflect("payload", json.RawMessage(rec.Message)),
	)
}

func (a *Adapter) timestamp(at time.Time) string {
	if a.df != nil {
		return a.df.Format(at)
	}
	return at.UTC().Format(time.RFC3339Nano)
}

// SetMinLevel updates the backend filter when an AtomicLevel was supplied.
// If not provided, this is a no-op (cutelog filtering still applies).
func (a *Adapter) SetMinLevel(l cutelog.Level) {
	if a.al == nil {
		return
	}
	a.al.SetLevel(toZapLevel(l))
}

// Sync flushes buffered zap output.
func (a *Adapter) Sync() error {
	return a.l.Sync()
}

func toZapLevel(l cutelog.Level) zapcore.Level {
	switch {
	case l <= cutelog.LevelDebug:
		return zapcore.DebugLevel
	case l <= cutelog.LevelInfo:
		return zapcore.InfoLevel
	case l <= cutelog.LevelWarn:
		return zapcore.WarnLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}
