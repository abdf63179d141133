package cutelog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseShiftAge(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		backups int
		period  rotationPeriod
		wantErr bool
	}{
		{"", 7, periodNone, false},
		{"3", 3, periodNone, false},
		{" 0 ", 0, periodNone, false},
		{"daily", 0, periodDaily, false},
		{"Weekly", 0, periodWeekly, false},
		{"MONTHLY", 0, periodMonthly, false},
		{"-1", 0, periodNone, true},
		{"hourly", 0, periodNone, true},
	}
	for _, tc := range cases {
		n, p, err := parseShiftAge(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%q: err=%v wantErr=%v", tc.in, err, tc.wantErr)
		}
		if err == nil && (n != tc.backups || p != tc.period) {
			t.Fatalf("%q: got (%d,%d) want (%d,%d)", tc.in, n, p, tc.backups, tc.period)
		}
	}
}

func TestNextBoundary(t *testing.T) {
	t.Parallel()

	wed := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC) // Wednesday
	sun := time.Date(2025, 1, 5, 23, 0, 0, 0, time.UTC)
	dec := time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		now  time.Time
		p    rotationPeriod
		want time.Time
	}{
		{wed, periodDaily, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{wed, periodWeekly, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{sun, periodWeekly, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)},
		{wed, periodMonthly, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{dec, periodMonthly, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := nextBoundary(tc.now, tc.p); !got.Equal(tc.want) {
			t.Fatalf("nextBoundary(%s, %d) = %s, want %s", tc.now, tc.p, got, tc.want)
		}
	}
}

func TestRotatingFileCreatesDirectory(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "nested", "deeper", "app.log")
	rf, err := NewRotatingFile(RotateConfig{Filename: name})
	if err != nil {
		t.Fatalf("new rotating file: %v", err)
	}
	defer rf.Close()

	if _, err := os.Stat(filepath.Dir(name)); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
	if _, err := rf.Write([]byte("hello\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(name)
	if err != nil || string(b) != "hello\n" {
		t.Fatalf("content: %q err=%v", b, err)
	}
}

func TestRotatingFileRotatesBySize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rf, err := NewRotatingFile(RotateConfig{
		Filename:  filepath.Join(dir, "app.log"),
		ShiftAge:  "3",
		ShiftSize: 1,
	})
	if err != nil {
		t.Fatalf("new rotating file: %v", err)
	}
	defer rf.Close()

	chunk := bytes.Repeat([]byte("x"), 600*1024)
	for i := 0; i < 2; i++ {
		if _, err := rf.Write(chunk); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected active file plus one backup, got %d", len(entries))
	}
	info, err := os.Stat(rf.Filename())
	if err != nil || info.Size() != int64(len(chunk)) {
		t.Fatalf("active file size: %v err=%v", info, err)
	}
}

func TestRotatingFileReopenAfterMove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	name := filepath.Join(dir, "app.log")
	rf, err := NewRotatingFile(RotateConfig{Filename: name})
	if err != nil {
		t.Fatalf("new rotating file: %v", err)
	}
	defer rf.Close()

	if _, err := rf.Write([]byte("before\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Rename(name, name+".1"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := rf.Reopen(); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := rf.Write([]byte("after\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	cur, _ := os.ReadFile(name)
	old, _ := os.ReadFile(name + ".1")
	if string(cur) != "after\n" || string(old) != "before\n" {
		t.Fatalf("current=%q moved=%q", cur, old)
	}
}

func TestRotatingFileBadShiftAge(t *testing.T) {
	t.Parallel()

	if _, err := NewRotatingFile(RotateConfig{Filename: filepath.Join(t.TempDir(), "a.log"), ShiftAge: "sometimes"}); err == nil {
		t.Fatal("expected error")
	}
}
