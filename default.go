package cutelog

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Facade: global access (Singleton + Facade).
var (
	global    atomic.Pointer[Logger]
	globalMu  sync.Mutex
	stopWatch func()
)

// Setup builds a Logger from Settings, installs it as the global logger and
// starts reopening its file on DefaultReopenSignals. A configuration error
// (for example an unknown severity) leaves the previous global in place.
func Setup(s Settings) (*Logger, error) {
	l, err := New(s)
	if err != nil {
		return nil, err
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	installLocked(l)
	return l, nil
}

// SetGlobal installs l as the global logger. A running reopen watcher follows
// the swap; the previous logger is left open for its owner to close.
func SetGlobal(l *Logger) { global.Store(l) }

// globalReopener reopens whichever logger is global when the signal arrives.
type globalReopener struct{}

func (globalReopener) Reopen() error {
	if l := global.Load(); l != nil {
		return l.Reopen()
	}
	return nil
}

// L returns the global Logger. On first use without Setup it runs
// Setup(Settings{}) so that environment configuration applies; it panics if that
// fails to surface misconfig early.
func L() *Logger {
	if l := global.Load(); l != nil {
		return l
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if l := global.Load(); l != nil {
		return l
	}
	l, err := New(Settings{})
	if err != nil {
		panic(fmt.Sprintf("cutelog: default logger setup failed: %v", err))
	}
	installLocked(l)
	return l
}

// Reset stops signal handling, closes the global logger and clears it, so the
// next L() starts from scratch. Meant for tests.
func Reset() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if stopWatch != nil {
		stopWatch()
		stopWatch = nil
	}
	old := global.Swap(nil)
	if old == nil {
		return nil
	}
	return old.Close()
}

func installLocked(l *Logger) {
	if stopWatch == nil {
		stopWatch = WatchReopen(globalReopener{}, nil)
	}
	if old := global.Swap(l); old != nil && old != l {
		old.Close()
	}
}

// SetSeverity changes the global threshold. Unknown names return an
// *UnknownSeverityError and leave the threshold unchanged.
func SetSeverity(text string) error {
	return L().SetSeverity(text)
}
