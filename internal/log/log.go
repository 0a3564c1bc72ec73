package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// LoggerConfigurator carries the settings applied by Setup.
type LoggerConfigurator struct {
	Writer            io.Writer
	Level             string
	TimeFormatTempl   string
	CallerFormatTempl string
}

// NewLogConfigurator creates a LoggerConfigurator that discards output at INFO level.
// Standard output belongs to the screen, so nothing is written there.
func NewLogConfigurator() *LoggerConfigurator {
	return &LoggerConfigurator{
		Writer:          io.Discard,
		Level:           "INFO",
		TimeFormatTempl: time.RFC3339 + " ",
	}
}

func (config *LoggerConfigurator) Output() io.Writer {
	return config.Writer
}
func (config *LoggerConfigurator) LogLevel() string {
	return config.Level
}
func (config *LoggerConfigurator) TimestampFormat() string {
	return config.TimeFormatTempl
}
func (config *LoggerConfigurator) CallerFormat() string {
	return config.CallerFormatTempl
}

// Level is the logging level.
type Level int

const (
	// DEBUG level for developer information
	DEBUG Level = iota - 1
	// INFO level for state and status
	INFO
	// WARN level for possible issues
	WARN
	// ERROR level for errors
	ERROR
)

// String returns an upper case string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// PaddedString returns a five character upper case representation of the log level
func (l Level) PaddedString() string {
	s := l.String()
	if len(s) < 5 {
		s += strings.Repeat(" ", 5-len(s))
	}
	return s
}

// UnmarshalText converts a slice of characters to a Level
func (l *Level) UnmarshalText(text []byte) bool {
	switch strings.TrimSpace(string(bytes.ToUpper(text))) {
	case "DEBUG":
		*l = DEBUG
	case "INFO", "":
		*l = INFO
	case "WARN":
		*l = WARN
	case "ERROR":
		*l = ERROR
	default:
		return false
	}
	return true
}

// Configurator has methods to fetch the logger configuration values
type Configurator interface {
	LogLevel() string
	Output() io.Writer
	TimestampFormat() string
	CallerFormat() string
}

// CoreLogger implements logging
type CoreLogger struct {
	mu              sync.Mutex
	level           Level
	writer          io.Writer
	timestampFormat string
	callerFormat    string
}

var (
	defaultLogger *CoreLogger
	defaultOnce   sync.Once
)

// New creates a logger at INFO level with timestamp and file:line reporting that discards its output
// until SetOutput or Setup gives it somewhere to go.
func New() *CoreLogger {
	return &CoreLogger{
		level:           INFO,
		writer:          io.Discard,
		timestampFormat: "01-02 15:04:05.000 ",
		callerFormat:    " %20.20s:%03d - ",
	}
}

// GetDefaultLogger returns the process wide logger.
func GetDefaultLogger() *CoreLogger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

func (c *CoreLogger) log(level Level, format string, args []interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if level < c.level {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}

	var msg string
	if format == "" {
		msg = fmt.Sprint(args...)
	} else {
		msg = fmt.Sprintf(format, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format(c.timestampFormat))
	b.WriteString(level.PaddedString())
	_, _ = fmt.Fprintf(&b, c.callerFormat, file, line)
	b.WriteString(msg)
	b.WriteString("\n")
	_, _ = io.WriteString(c.writer, b.String())
}

// Setup applies a Configurator. Empty settings leave the current value in place.
func (c *CoreLogger) Setup(config Configurator) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.level.UnmarshalText([]byte(config.LogLevel()))
	if writer := config.Output(); writer != nil {
		c.writer = writer
	}
	if f := config.TimestampFormat(); f != "" {
		c.timestampFormat = f
	}
	if f := config.CallerFormat(); f != "" {
		c.callerFormat = f
	}
}

// SetOutput sets the io.Writer to which all future log messages will be written.
func (c *CoreLogger) SetOutput(w io.Writer) {
	c.mu.Lock()
	c.writer = w
	c.mu.Unlock()
}

// SetLogLevel sets a filter on the minimum level of messages that will be logged.
func (c *CoreLogger) SetLogLevel(level Level) {
	c.mu.Lock()
	c.level = level
	c.mu.Unlock()
}

func (c *CoreLogger) GetLogLevel() Level {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

func (c *CoreLogger) Debugf(format string, args ...interface{}) {
	c.log(DEBUG, format, args)
}
func (c *CoreLogger) Infof(format string, args ...interface{}) {
	c.log(INFO, format, args)
}
func (c *CoreLogger) Warnf(format string, args ...interface{}) {
	c.log(WARN, format, args)
}
func (c *CoreLogger) Errorf(format string, args ...interface{}) {
	c.log(ERROR, format, args)
}

// *************************************************************
// Package level functions fall through to the default logger.

func Setup(config Configurator) {
	GetDefaultLogger().Setup(config)
}

func Debugf(format string, args ...interface{}) {
	GetDefaultLogger().log(DEBUG, format, args)
}
func Infof(format string, args ...interface{}) {
	GetDefaultLogger().log(INFO, format, args)
}
func Errorf(format string, args ...interface{}) {
	GetDefaultLogger().log(ERROR, format, args)
}

// OpenFile opens path for appending log lines. An empty path yields io.Discard and a no-op closer.
func OpenFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
