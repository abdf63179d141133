package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/cutelog"
	"github.com/trickstertwo/xclock"
)

// Config is an explicit, code-first configuration for zap + cutelog.
type Config struct {
	Writer        io.Writer // default: os.Stdout
	MinLevel      cutelog.Level
	Console       bool                  // console-like output via zapcore.NewConsoleEncoder
	EncoderConfig zapcore.EncoderConfig // if zero, a sensible default is used
	DateFormat    *cutelog.DateFormat   // optional "ts" layout; RFC3339Nano when nil
}

func init() {
	cutelog.RegisterBackend("zap", func(o cutelog.BackendOptions) (cutelog.Adapter, error) {
		return NewAdapter(Config{
			Writer:     o.Writer,
			MinLevel:   o.MinLevel,
			DateFormat: o.DateFormat,
		}), nil
	})
}

// NewAdapter builds a zap core from Config and wraps it.
func NewAdapter(cfg Config) *Adapter {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	// Encoder config defaults: do not let zap inject its own time (the adapter provides "ts")
	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" {
		encCfg = zapcore.EncoderConfig{
			TimeKey:        "",
			LevelKey:       "level",
			MessageKey:     "label",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	} else {
		encCfg.TimeKey = ""
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	// Use AtomicLevel so Adapter.SetMinLevel can adjust dynamically.
	al := zap.NewAtomicLevelAt(toZapLevel(cfg.MinLevel))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)
	zl := zap.New(core, zap.AddStacktrace(zapcore.FatalLevel+1))

	return NewWithAtomicLevel(zl, &al).WithDateFormat(cfg.DateFormat)
}

// Use builds a zap-backed cutelog logger from Config, wires it as the global
// logger, and returns it. The logger is bound to xclock.Default().
func Use(cfg Config) *cutelog.Logger {
	logger, err := cutelog.NewBuilder().
		WithAdapter(NewAdapter(cfg)).
		WithMinLevel(cfg.MinLevel).
		WithClock(xclock.Default()).
		Build()
	if err != nil {
		panic(err)
	}
	cutelog.SetGlobal(logger)
	return logger
}
