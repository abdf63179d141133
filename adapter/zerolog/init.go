package zerologadapter

import (
	"os"

	"github.com/trickstertwo/cutelog"
)

// Registers the "zerolog" backend.
//
// Env:
//
//	CUTE_LOGGER_CONSOLE=1 : pretty ConsoleWriter output instead of JSON
func init() {
	cutelog.RegisterBackend("zerolog", func(o cutelog.BackendOptions) (cutelog.Adapter, error) {
		return NewAdapter(Config{
			Writer:     o.Writer,
			MinLevel:   o.MinLevel,
			Console:    os.Getenv("CUTE_LOGGER_CONSOLE") == "1",
			DateFormat: o.DateFormat,
		}), nil
	})
}
