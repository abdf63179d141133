//go:build unix

package cutelog

import (
	"os"
	"syscall"
)

// DefaultReopenSignals returns the signals that reopen the log file: HUP and USR1.
func DefaultReopenSignals() []os.Signal {
	return []os.Signal{syscall.SIGHUP, syscall.SIGUSR1}
}
