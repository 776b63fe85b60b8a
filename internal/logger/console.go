// Package logger writes levelled diagnostics for spchk runs
//
// Diagnostics are kept on their own writer (normally stderr) so they never
// interleave with the miss report on stdout
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Color modes accepted by ColorEnabled
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines. It is safe for
// concurrent use
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger that writes to w.
// If w is nil, messages are silently discarded. An empty or unknown level
// defaults to "info". colorMode is one of auto, always, never
func NewConsoleLogger(w io.Writer, level string, colorMode string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       logLevelToInt(NormalizeLevel(level)),
		colorOutput: ColorEnabled(w, colorMode),
		now:         time.Now,
	}
}

// ColorEnabled resolves a color mode for w. In auto mode color is used only
// when w is a terminal and NO_COLOR is unset
func ColorEnabled(w io.Writer, mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor && (f == os.Stdout || f == os.Stderr) {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NormalizeLevel lower-cases level and maps unknown values to "info"
func NormalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Tracef logs at trace level (most verbose)
func (l *ConsoleLogger) Tracef(format string, args ...any) {
	l.logf(levelTrace, "TRACE", format, args...)
}

// Debugf logs at debug level
func (l *ConsoleLogger) Debugf(format string, args ...any) {
	l.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs at info level
func (l *ConsoleLogger) Infof(format string, args ...any) {
	l.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs at warn level
func (l *ConsoleLogger) Warnf(format string, args ...any) {
	l.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs at error level
func (l *ConsoleLogger) Errorf(format string, args ...any) {
	l.logf(levelError, "ERROR", format, args...)
}

// Enabled reports whether messages at level would be written
func (l *ConsoleLogger) Enabled(level string) bool {
	return l != nil && l.writer != nil && logLevelToInt(NormalizeLevel(level)) >= l.level
}

func (l *ConsoleLogger) logf(level int, name string, format string, args ...any) {
	if l == nil || l.writer == nil || level < l.level {
		return
	}

	message := fmt.Sprintf(format, args...)
	ts := l.now().Format("15:04:05")

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.colorOutput {
		name = levelColor(level).Sprint(name)
	}
	_, _ = fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, name, message)
}

func levelColor(level int) *color.Color {
	switch level {
	case levelTrace:
		return color.New(color.FgHiBlack)
	case levelDebug:
		return color.New(color.FgCyan)
	case levelInfo:
		return color.New(color.FgBlue)
	case levelWarn:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
