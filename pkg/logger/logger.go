package logger

import (
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is a leveled key/value logger writing logfmt lines.
type Logger struct {
	base log.Logger
}

// NewLogger returns a Logger writing to stderr, filtered at the given level
// (debug, info, warn, error). Unknown or empty levels default to info.
func NewLogger(lvl string) *Logger {
	return NewLoggerWithWriter(os.Stderr, lvl)
}

func NewLoggerWithWriter(w io.Writer, lvl string) *Logger {
	base := log.NewLogfmtLogger(log.NewSyncWriter(w))
	base = level.NewFilter(base, levelOption(lvl))
	base = log.With(base, "ts", log.DefaultTimestampUTC)
	return &Logger{base: base}
}

func NewNopLogger() *Logger {
	return &Logger{base: log.NewNopLogger()}
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

// With returns a child logger that always carries keyvals.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{base: log.With(l.base, keyvals...)}
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.log(level.Debug(l.base), msg, keyvals)
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.log(level.Info(l.base), msg, keyvals)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.log(level.Warn(l.base), msg, keyvals)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.log(level.Error(l.base), msg, keyvals)
}

func (l *Logger) log(base log.Logger, msg string, keyvals []interface{}) {
	_ = base.Log(append([]interface{}{"msg", msg}, keyvals...)...)
}
