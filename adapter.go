package cutelog

import "io"

// Adapter is the logging backend Strategy. Log receives a fully formatted record;
// serialising concurrent writes to the destination is the adapter's job.
// Write failures are the adapter's to report, Log never returns them.
type Adapter interface {
	Log(rec Record)
}

// adapterLevelSetter is an optional interface adapters can implement
// to receive min-level changes from the Logger.
type adapterLevelSetter interface {
	SetMinLevel(Level)
}

// Reopener is implemented by adapters and writers that can reopen their
// destination, e.g. after an external log rotation.
type Reopener interface {
	Reopen() error
}

var _ io.Closer = (*LineAdapter)(nil)
var _ Reopener = (*LineAdapter)(nil)
