package cutelog

import (
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ErrUnknownBackend is returned when Settings name a backend nobody registered.
var ErrUnknownBackend = errors.New("cutelog: unknown backend")

// BackendOptions is what a BackendFactory gets to build its Adapter from.
type BackendOptions struct {
	Writer       io.Writer // rotating file or Settings.Writer
	MinLevel     Level
	DateFormat   *DateFormat
	ErrorHandler ErrorHandler
}

// BackendFactory builds an Adapter for New/Setup.
type BackendFactory func(BackendOptions) (Adapter, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]BackendFactory{
		DefaultBackend: func(o BackendOptions) (Adapter, error) {
			return NewLineAdapter(o.Writer, LineOptions{
				MinLevel:     o.MinLevel,
				DateFormat:   o.DateFormat,
				ErrorHandler: o.ErrorHandler,
			}), nil
		},
	}
)

// RegisterBackend makes a backend selectable by name through Settings.Backend
// or CUTE_LOGGER_BACKEND. Adapter packages call this from init() to avoid
// import cycles. Registering an existing name replaces it.
func RegisterBackend(name string, f BackendFactory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[strings.ToLower(name)] = f
}

// Backends lists the registered backend names.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return namesLocked()
}

func lookupBackend(name string) (BackendFactory, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	f, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "%q (registered: %s)", name, strings.Join(namesLocked(), ", "))
	}
	return f, nil
}

func namesLocked() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
