package cutelog

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultFilename  = "application.log"
	DefaultShiftAge  = "7"
	DefaultShiftSize = int64(1024 * 1024 * 1024) // one gigabyte

	megabyte = 1024 * 1024
)

type rotationPeriod uint8

const (
	periodNone rotationPeriod = iota
	periodDaily
	periodWeekly
	periodMonthly
)

// RotateConfig describes when a RotatingFile rotates.
//
// ShiftAge is either the number of rotated files to keep ("7") or a period
// ("daily", "weekly", "monthly"). ShiftSize is the size in bytes that triggers a
// rotation; it is rounded up to whole megabytes.
type RotateConfig struct {
	Filename     string
	ShiftAge     string
	ShiftSize    int64
	Compress     bool
	ErrorHandler ErrorHandler // receives failed period rotations
}

// RotatingFile is an io.Writer appending to a file that rotates by size and,
// optionally, by calendar period.
type RotatingFile struct {
	lj      *lumberjack.Logger
	period  rotationPeriod
	onError ErrorHandler

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// parseShiftAge returns the backup count or the rotation period of a ShiftAge.
func parseShiftAge(s string) (int, rotationPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		s = DefaultShiftAge
	case "daily":
		return 0, periodDaily, nil
	case "weekly":
		return 0, periodWeekly, nil
	case "monthly":
		return 0, periodMonthly, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, periodNone, errors.Errorf("cutelog: invalid shift age %q", s)
	}
	return n, periodNone, nil
}

// NewRotatingFile creates the log directory and prepares the file. The file
// itself is opened on first write.
func NewRotatingFile(cfg RotateConfig) (*RotatingFile, error) {
	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}
	if cfg.ShiftSize <= 0 {
		cfg.ShiftSize = DefaultShiftSize
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	backups, period, err := parseShiftAge(cfg.ShiftAge)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(cfg.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "cutelog: failed to create log directory")
		}
	}

	maxSize := int((cfg.ShiftSize + megabyte - 1) / megabyte)
	if maxSize < 1 {
		maxSize = 1
	}
	rf := &RotatingFile{
		lj: &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    maxSize,
			MaxBackups: backups,
			LocalTime:  true,
			Compress:   cfg.Compress,
		},
		period:  period,
		onError: cfg.ErrorHandler,
	}
	rf.schedule(time.Now())
	return rf, nil
}

// Filename returns the path of the active file.
func (f *RotatingFile) Filename() string { return f.lj.Filename }

func (f *RotatingFile) Write(p []byte) (int, error) {
	return f.lj.Write(p)
}

// Rotate moves the current file aside and starts a new one.
func (f *RotatingFile) Rotate() error {
	return f.lj.Rotate()
}

// Reopen closes the current handle; the next write opens Filename again. This
// picks up a file that was moved away by an external tool.
func (f *RotatingFile) Reopen() error {
	return f.lj.Close()
}

// Close stops period rotation and closes the file.
func (f *RotatingFile) Close() error {
	f.mu.Lock()
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()
	return f.lj.Close()
}

func (f *RotatingFile) schedule(now time.Time) {
	if f.period == periodNone {
		return
	}
	next := nextBoundary(now, f.period)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.timer = time.AfterFunc(next.Sub(now), func() {
		if err := f.lj.Rotate(); err != nil {
			f.onError(errors.Wrap(err, "cutelog: period rotation failed"))
		}
		f.schedule(time.Now())
	})
}

// nextBoundary returns the start of the period following now, in now's location.
func nextBoundary(now time.Time, p rotationPeriod) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch p {
	case periodDaily:
		return midnight.AddDate(0, 0, 1)
	case periodWeekly:
		return midnight.AddDate(0, 0, 7-int(now.Weekday()))
	case periodMonthly:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Time{}
}
