package slogadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/trickstertwo/cutelog"
)

// SlogAdapter adapts cutelog to the Go slog API (Adapter Strategy).
// Each Record becomes one slog.Record handed straight to the handler. The record
// timestamp goes out as slog's own time so handlers format it their way.
type SlogAdapter struct {
	l  *slog.Logger
	lv *slog.LevelVar // optional, enables SetMinLevel
}

func toSlog(l cutelog.Level) slog.Level {
	return slog.Level(l)
}

func New(l *slog.Logger) *SlogAdapter {
	return NewWithLevelVar(l, nil)
}

// NewWithLevelVar wires the handler's LevelVar so SetMinLevel can adjust it.
func NewWithLevelVar(l *slog.Logger, lv *slog.LevelVar) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{l: l, lv: lv}
}

func (a *SlogAdapter) Log(rec cutelog.Record) {
	ctx := context.Background()
	level := toSlog(rec.Level)
	if !a.l.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(rec.At, level, rec.Label, 0)
	r.AddAttrs(
		slog.String("severity", rec.Level.String()),
		slog.String("pid", strconv.FormatInt(int64(rec.PID), 16)),
		slog.String("tid", strconv.FormatUint(rec.GoroutineID, 16)),
		slog.Any("payload", json.RawMessage(rec.Message)),
	)
	_ = a.l.Handler().Handle(ctx, r)
}

// SetMinLevel updates the LevelVar when one was supplied.
func (a *SlogAdapter) SetMinLevel(l cutelog.Level) {
	if a.lv == nil {
		return
	}
	a.lv.Set(toSlog(l))
}
