package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/cutelog"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for slog + cutelog.
type Config struct {
	Writer         io.Writer            // default: os.Stdout
	MinLevel       cutelog.Level        // cutelog + slog will both use this
	Format         Format               // JSON (default) or Text
	HandlerOptions *slog.HandlerOptions // optional; Level is managed via LevelVar
}

func init() {
	cutelog.RegisterBackend("slog", func(o cutelog.BackendOptions) (cutelog.Adapter, error) {
		return NewAdapter(Config{Writer: o.Writer, MinLevel: o.MinLevel}), nil
	})
}

// NewAdapter builds a slog handler from Config and wraps it.
func NewAdapter(cfg Config) *SlogAdapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := slog.HandlerOptions{}
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}

	// Use a LevelVar to allow dynamic SetMinLevel on the adapter.
	lv := new(slog.LevelVar)
	lv.Set(toSlog(cfg.MinLevel))
	opts.Level = lv

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}
	return NewWithLevelVar(slog.New(h), lv)
}

// Use builds a slog-backed logger from Config, sets it as global, and returns it.
func Use(cfg Config) *cutelog.Logger {
	logger, err := cutelog.NewBuilder().
		WithAdapter(NewAdapter(cfg)).
		WithMinLevel(cfg.MinLevel).
		Build()
	if err != nil {
		panic(err)
	}
	cutelog.SetGlobal(logger)
	return logger
}
