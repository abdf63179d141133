package cutelog

import (
	"os"
	"os/signal"
	"sync"
)

// WatchReopen calls r.Reopen on a dedicated goroutine every time one of sigs
// arrives (DefaultReopenSignals when none are given; with no signals at all
// nothing is watched). Reopen failures go to
// onError, or stderr when onError is nil. The returned stop function
// unregisters the signals and waits for the goroutine to exit.
func WatchReopen(r Reopener, onError ErrorHandler, sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		sigs = DefaultReopenSignals()
	}
	if len(sigs) == 0 {
		return func() {}
	}
	if onError == nil {
		onError = defaultErrorHandler
	}
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	var wg sync.WaitGroup

	signal.Notify(ch, sigs...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-ch:
				if err := r.Reopen(); err != nil {
					onError(err)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
			wg.Wait()
		})
	}
}
