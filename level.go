package cutelog

import (
	"strings"
)

// Level mirrors slog numeric semantics and extends with Fatal (12).
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelFatal Level = 12
)

var levelNames = map[string]Level{
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"ERROR": LevelError,
	"FATAL": LevelFatal,
}

// String returns the upper-case severity name used in log lines.
func (l Level) String() string {
	switch {
	case l <= LevelDebug:
		return "DEBUG"
	case l <= LevelInfo:
		return "INFO"
	case l <= LevelWarn:
		return "WARN"
	case l <= LevelError:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// UnknownSeverityError is returned when a severity name is not one of
// DEBUG, INFO, WARN, ERROR or FATAL.
type UnknownSeverityError struct {
	Name string
}

func (e *UnknownSeverityError) Error() string {
	return "cutelog: unknown logger severity: " + e.Name
}

// ParseLevel looks up a severity name case-insensitively.
func ParseLevel(text string) (Level, error) {
	if l, ok := levelNames[strings.ToUpper(strings.TrimSpace(text))]; ok {
		return l, nil
	}
	return LevelInfo, &UnknownSeverityError{Name: text}
}

// ParseLevelOrDefault is ParseLevel with an empty name meaning LevelInfo.
func ParseLevelOrDefault(text string) (Level, error) {
	if strings.TrimSpace(text) == "" {
		return LevelInfo, nil
	}
	return ParseLevel(text)
}

// ShouldLog reports whether a message at sev passes threshold.
func ShouldLog(sev, threshold Level) bool {
	return sev >= threshold
}
