package cutelog

import (
	"io"

	"github.com/pkg/errors"
	"github.com/trickstertwo/xclock"
)

// ErrNoAdapter is returned by Build when no Adapter was supplied.
var ErrNoAdapter = errors.New("cutelog: no adapter configured")

// Config is what Build assembles a Logger from.
type Config struct {
	Adapter   Adapter
	MinLevel  Level
	Observers []Observer
	Clock     xclock.Clock // optional; defaults to xclock.Now()

	// Destination is the output the Logger owns. Close closes it after the
	// adapter, and Reopen falls back to it when the adapter cannot reopen.
	Destination io.Closer
}

// Builder collects a Config step by step.
type Builder struct {
	cfg Config
}

// NewBuilder starts at LevelInfo with no adapter.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{MinLevel: LevelInfo}}
}

func (b *Builder) WithAdapter(a Adapter) *Builder {
	b.cfg.Adapter = a
	return b
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

// WithSeverity is WithMinLevel for a severity name; an empty name means INFO.
func (b *Builder) WithSeverity(text string) (*Builder, error) {
	l, err := ParseLevelOrDefault(text)
	if err != nil {
		return b, err
	}
	return b.WithMinLevel(l), nil
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

// WithDestination hands ownership of c to the Logger.
func (b *Builder) WithDestination(c io.Closer) *Builder {
	b.cfg.Destination = c
	return b
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

// Build validates the Config and returns the Logger. The adapter receives the
// threshold before the first record.
func (b *Builder) Build() (*Logger, error) {
	if b.cfg.Adapter == nil {
		return nil, ErrNoAdapter
	}
	if ls, ok := b.cfg.Adapter.(adapterLevelSetter); ok {
		ls.SetMinLevel(b.cfg.MinLevel)
	}
	return newLogger(b.cfg), nil
}
