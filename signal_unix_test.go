//go:build unix

package cutelog

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

type countingReopener struct{ n atomic.Int32 }

func (c *countingReopener) Reopen() error {
	c.n.Add(1)
	return nil
}

func TestDefaultReopenSignals(t *testing.T) {
	sigs := DefaultReopenSignals()
	if len(sigs) != 2 || sigs[0] != syscall.SIGHUP || sigs[1] != syscall.SIGUSR1 {
		t.Fatalf("signals: %v", sigs)
	}
}

func TestWatchReopenOnSignal(t *testing.T) {
	r := &countingReopener{}
	stop := WatchReopen(r, nil, syscall.SIGUSR1)
	defer stop()

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("kill: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for r.n.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("reopen not called after signal")
		}
		time.Sleep(10 * time.Millisecond)
	}

	stop()
	stop()
}

func TestSetupReopensOnSIGHUP(t *testing.T) {
	clearEnv(t)
	t.Cleanup(func() { Reset() })

	path := filepath.Join(t.TempDir(), "app.log")
	if _, err := Setup(Settings{Filename: path}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	Info("App", "before")
	if err := os.Rename(path, path+".1"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := syscall.Kill(os.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("kill: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		Info("App", "after")
		if b, err := os.ReadFile(path); err == nil && strings.Contains(string(b), `"after"`) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("log file was not reopened after SIGHUP")
		}
		time.Sleep(10 * time.Millisecond)
	}

	moved, _ := os.ReadFile(path + ".1")
	if !strings.Contains(string(moved), `"before"`) {
		t.Fatalf("moved file lost its content: %q", moved)
	}
}

func TestSetGlobalFollowsReopenSignal(t *testing.T) {
	clearEnv(t)
	t.Cleanup(func() { Reset() })

	if _, err := Setup(Settings{Writer: &strings.Builder{}}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	custom, adapter := newStubLogger(t, LevelInfo)
	SetGlobal(custom)

	if err := syscall.Kill(os.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("kill: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for adapter.reopenCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("signal did not reach the logger installed by SetGlobal")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
