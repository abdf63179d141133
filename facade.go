package cutelog

// Facade helpers using the global Singleton logger.
// Usage: cutelog.Info("Billing", "charged", cutelog.M("id", id))

func Log(level Level, label string, args ...any)       { L().Log(level, label, args...) }
func LogFunc(level Level, label string, fn func() any) { L().LogFunc(level, label, fn) }
func Debug(label string, args ...any)                  { L().Log(LevelDebug, label, args...) }
func Info(label string, args ...any)                   { L().Log(LevelInfo, label, args...) }
func Warn(label string, args ...any)                   { L().Log(LevelWarn, label, args...) }
func Error(label string, args ...any)                  { L().Log(LevelError, label, args...) }
func Fatal(label string, args ...any)                  { L().Log(LevelFatal, label, args...) }
func DebugFunc(label string, fn func() any)            { L().LogFunc(LevelDebug, label, fn) }
func InfoFunc(label string, fn func() any)             { L().LogFunc(LevelInfo, label, fn) }
func WarnFunc(label string, fn func() any)             { L().LogFunc(LevelWarn, label, fn) }
func ErrorFunc(label string, fn func() any)            { L().LogFunc(LevelError, label, fn) }
func FatalFunc(label string, fn func() any)            { L().LogFunc(LevelFatal, label, fn) }

