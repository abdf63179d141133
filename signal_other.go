//go:build !unix

package cutelog

import "os"

// DefaultReopenSignals returns no signals on platforms without HUP/USR1;
// call Logger.Reopen directly there.
func DefaultReopenSignals() []os.Signal {
	return nil
}
