package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fadedpez/eights/internal/types"
	"github.com/sirupsen/logrus"
)

// Level represents a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var logrusLevels = map[Level]logrus.Level{
	DEBUG: logrus.DebugLevel,
	INFO:  logrus.InfoLevel,
	WARN:  logrus.WarnLevel,
	ERROR: logrus.ErrorLevel,
}

// String returns the level name
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a name such as "debug" or "WARN" into a Level
func ParseLevel(name string) (Level, error) {
	for level, levelName := range levelNames {
		if strings.EqualFold(name, levelName) {
			return level, nil
		}
	}
	if strings.EqualFold(name, "warning") {
		return WARN, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

// Logger is a levelled logger backed by logrus
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	level Level
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(level Level) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	base.SetLevel(logrusLevels[level])

	return &Logger{
		base:  base,
		entry: logrus.NewEntry(base),
		level: level,
	}
}

// SetOutput redirects the logger
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// SetLevel changes the minimum level that is written
func (l *Logger) SetLevel(level Level) {
	l.level = level
	l.base.SetLevel(logrusLevels[level])
}

// Level returns the current minimum level
func (l *Logger) Level() Level {
	return l.level
}

// WithField returns a logger that adds key=value to every line
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		base:  l.base,
		entry: l.entry.WithField(key, value),
		level: l.level,
	}
}

// caller reports the file:line of the code that called the logger
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= DEBUG {
		l.entry.WithField("caller", caller(2)).Debugf(format, v...)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= INFO {
		l.entry.WithField("caller", caller(2)).Infof(format, v...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.level <= WARN {
		l.entry.WithField("caller", caller(2)).Warnf(format, v...)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= ERROR {
		l.entry.WithField("caller", caller(2)).Errorf(format, v...)
	}
}

// LogError logs a GameError with its code and cause as fields
func (l *Logger) LogError(err error) {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		fields := logrus.Fields{
			"caller": caller(2),
			"code":   gameErr.Code,
		}
		if gameErr.Err != nil {
			fields["cause"] = gameErr.Err.Error()
		}
		l.entry.WithFields(fields).Errorf("Game error occurred: %s", gameErr.Message)
	} else {
		l.entry.WithField("caller", caller(2)).Errorf("Unexpected error: %v", err)
	}
}

// Default logger instance
var Default = NewLogger(INFO)
