package cutelog

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Environment variables read by ResolveSettings. Each one takes precedence over
// the corresponding Settings field.
const (
	EnvFilename   = "CUTE_LOGGER_FILENAME"
	EnvShiftAge   = "CUTE_LOGGER_SHIFT_AGE"
	EnvShiftSize  = "CUTE_LOGGER_SHIFT_SIZE"
	EnvSeverity   = "CUTE_LOGGER_SEVERITY"
	EnvDateFormat = "CUTE_LOGGER_DATE_FORMAT"
	EnvBackend    = "CUTE_LOGGER_BACKEND"
	EnvEnvFile    = "CUTE_LOGGER_ENV_FILE"
)

// DefaultBackend is the built-in line backend.
const DefaultBackend = "line"

// Settings configures a Logger built by New or Setup.
// Precedence for every option: environment variable, then the field, then the
// built-in default.
type Settings struct {
	Filename   string // default application.log
	ShiftAge   string // backups to keep ("7") or "daily"/"weekly"/"monthly"
	ShiftSize  int64  // bytes; default one gigabyte
	Severity   string // DEBUG, INFO, WARN, ERROR or FATAL; default INFO
	DateFormat string // strftime pattern; default DefaultDateFormat
	Backend    string // registered backend name; default "line"

	// EnvFile names a dotenv file loaded before the environment is read.
	// Variables already set in the process environment win over the file.
	EnvFile string

	// Writer replaces the rotating file, e.g. os.Stdout. Not read from env.
	// The Logger never closes it; the caller keeps ownership.
	Writer io.Writer

	// ErrorHandler receives write failures; defaults to stderr.
	ErrorHandler ErrorHandler
}

// ResolveSettings applies environment overrides and defaults to s and
// validates the result.
func ResolveSettings(s Settings) (Settings, error) {
	if envFile := firstNonEmpty(os.Getenv(EnvEnvFile), s.EnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return s, errors.Wrapf(err, "cutelog: failed to load env file %q", envFile)
		}
		s.EnvFile = envFile
	}

	s.Filename = firstNonEmpty(os.Getenv(EnvFilename), s.Filename, DefaultFilename)
	s.ShiftAge = firstNonEmpty(os.Getenv(EnvShiftAge), s.ShiftAge, DefaultShiftAge)
	s.Severity = firstNonEmpty(os.Getenv(EnvSeverity), s.Severity, LevelInfo.String())
	s.DateFormat = firstNonEmpty(os.Getenv(EnvDateFormat), s.DateFormat, DefaultDateFormat)
	s.Backend = strings.ToLower(firstNonEmpty(os.Getenv(EnvBackend), s.Backend, DefaultBackend))

	if v := strings.TrimSpace(os.Getenv(EnvShiftSize)); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return s, errors.Errorf("cutelog: invalid %s %q", EnvShiftSize, v)
		}
		s.ShiftSize = n
	}
	if s.ShiftSize <= 0 {
		s.ShiftSize = DefaultShiftSize
	}

	if _, _, err := parseShiftAge(s.ShiftAge); err != nil {
		return s, err
	}
	if _, err := ParseLevel(s.Severity); err != nil {
		return s, errors.Wrap(err, "cutelog: invalid severity")
	}
	return s, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// New builds a Logger from Settings without installing it as the global logger.
func New(s Settings) (*Logger, error) {
	s, err := ResolveSettings(s)
	if err != nil {
		return nil, err
	}
	df, err := NewDateFormat(s.DateFormat)
	if err != nil {
		return nil, err
	}
	factory, err := lookupBackend(s.Backend)
	if err != nil {
		return nil, err
	}
	b, err := NewBuilder().WithSeverity(s.Severity)
	if err != nil {
		return nil, err
	}
	if s.ErrorHandler == nil {
		s.ErrorHandler = defaultErrorHandler
	}

	w := s.Writer
	var file *RotatingFile
	if w == nil {
		file, err = NewRotatingFile(RotateConfig{
			Filename:     s.Filename,
			ShiftAge:     s.ShiftAge,
			ShiftSize:    s.ShiftSize,
			ErrorHandler: s.ErrorHandler,
		})
		if err != nil {
			return nil, err
		}
		w = file
	}

	ad, err := factory(BackendOptions{
		Writer:       w,
		MinLevel:     b.cfg.MinLevel,
		DateFormat:   df,
		ErrorHandler: s.ErrorHandler,
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, errors.Wrapf(err, "cutelog: backend %q", s.Backend)
	}

	b = b.WithAdapter(ad)
	if file != nil {
		// Backends only write to the file; the Logger reopens and closes it.
		b = b.WithDestination(file)
	}
	return b.Build()
}
