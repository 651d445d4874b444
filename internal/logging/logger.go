package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// defaultLogger holds the package-level logger, created on first use.
//
//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel converts a level name to a log level. Names are case-insensitive and
// "warning" is accepted for "warn". Unknown names yield InfoLevel and false.
func ParseLevel(level string) (log.Level, bool) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel, false
	}
	return parsed, true
}

// New creates a stderr logger with the given level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w with the given level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	parsed, _ := ParseLevel(level)
	return log.NewWithOptions(w, log.Options{
		Level:           parsed,
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// Default returns the package-level logger, an info level stderr logger unless
// replaced with SetDefault.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the package-level logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel updates the level of the package-level logger.
func SetLevel(level string) {
	parsed, _ := ParseLevel(level)
	Default().SetLevel(parsed)
}
