package cutelog

import (
	"time"
)

// Record is one accepted log call. It is built per call, handed to the Adapter
// and observers, and never retained by the Logger.
type Record struct {
	At          time.Time
	Level       Level
	PID         int
	GoroutineID uint64
	Label       string
	Message     string // JSON payload produced by Format
}

// Observer is notified for each emitted record (Observer pattern).
// Implementations MUST be concurrency-safe.
type Observer interface {
	OnLog(rec Record)
}

// ObserverFunc adapter.
type ObserverFunc func(Record)

func (f ObserverFunc) OnLog(rec Record) { f(rec) }
