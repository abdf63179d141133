package cutelog

import (
	"bytes"
	"runtime"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/pkg/errors"
)

// DefaultDateFormat renders timestamps as YYYY-MM-DD HH:MM:SS.
const DefaultDateFormat = "%Y-%m-%d %H:%M:%S"

// DateFormat is a compiled strftime pattern.
type DateFormat struct {
	pattern string
	f       *strftime.Strftime
}

// NewDateFormat compiles a strftime-style pattern. An empty pattern selects
// DefaultDateFormat.
func NewDateFormat(pattern string) (*DateFormat, error) {
	if pattern == "" {
		pattern = DefaultDateFormat
	}
	f, err := strftime.New(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "cutelog: invalid date format %q", pattern)
	}
	return &DateFormat{pattern: pattern, f: f}, nil
}

func mustDateFormat(pattern string) *DateFormat {
	df, err := NewDateFormat(pattern)
	if err != nil {
		panic(err)
	}
	return df
}

// Pattern returns the strftime pattern the format was compiled from.
func (d *DateFormat) Pattern() string { return d.pattern }

// Format renders t.
func (d *DateFormat) Format(t time.Time) string { return d.f.FormatString(t) }

// AppendLine renders rec as
//
//	<timestamp>,<SEVERITY>,<pid hex>,<goroutine hex>,<label>,<json-payload>\n
//
// and appends it to dst.
func AppendLine(dst []byte, rec Record, df *DateFormat) []byte {
	dst = append(dst, df.Format(rec.At)...)
	dst = append(dst, ',')
	dst = append(dst, rec.Level.String()...)
	dst = append(dst, ',')
	dst = strconv.AppendInt(dst, int64(rec.PID), 16)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, rec.GoroutineID, 16)
	dst = append(dst, ',')
	dst = append(dst, rec.Label...)
	dst = append(dst, ',')
	dst = append(dst, rec.Message...)
	return append(dst, '\n')
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the id of the calling goroutine, the closest Go has to a
// thread id. Zero means it could not be determined.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
