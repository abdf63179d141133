package zerologadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/cutelog"
	"github.com/trickstertwo/xclock"
)

// Config is an explicit, code-first configuration for zerolog + cutelog.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	MinLevel          cutelog.Level
	Console           bool                // pretty console output instead of JSON
	ConsoleTimeFormat string              // only used if Console==true; default time.RFC3339Nano
	DateFormat        *cutelog.DateFormat // optional "ts" layout for JSON output
}

// NewAdapter builds a zerolog.Logger according to Config and wraps it.
func NewAdapter(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.ConsoleTimeFormat}
		if cw.TimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}

	ad := New(zl).WithDateFormat(cfg.DateFormat)
	// Propagate min level down to zerolog (optional interface)
	ad.SetMinLevel(cfg.MinLevel)
	return ad
}

// Use builds a zerolog-backed cutelog logger from Config, wires it as the global
// logger, and returns it. The logger is bound to xclock.Default().
func Use(cfg Config) *cutelog.Logger {
	logger, err := cutelog.NewBuilder().
		WithAdapter(NewAdapter(cfg)).
		WithMinLevel(cfg.MinLevel).
		WithClock(xclock.Default()).
		Build()
	if err != nil {
		// In practice, Build only fails with a nil adapter which cannot happen here.
		panic(err)
	}
	cutelog.SetGlobal(logger)
	return logger
}
