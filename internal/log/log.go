// ABOUTME: Level-gated logging wrapper around slog levels for engine diagnostics
// ABOUTME: Writes to a swappable writer (stderr by default) so output never mixes with caller UI

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// writerBox keeps the concrete type stored in the atomic.Value constant,
// since atomic.Value panics if successive stores use different types.
type writerBox struct{ w io.Writer }

var (
	level atomic.Int64
	out   atomic.Value // writerBox
)

func init() {
	level.Store(int64(LevelWarn))
	out.Store(writerBox{os.Stderr})
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log output. Tests use this to capture lines.
func SetOutput(w io.Writer) {
	out.Store(writerBox{w})
}

func emit(prefix, format string, args ...any) {
	w := out.Load().(writerBox).w
	fmt.Fprintf(w, prefix+format+"\n", args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if slog.Level(level.Load()) > LevelDebug {
		return
	}
	emit("[DEBUG] ", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if slog.Level(level.Load()) > LevelInfo {
		return
	}
	emit("[INFO] ", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if slog.Level(level.Load()) > LevelWarn {
		return
	}
	emit("[WARN] ", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	emit("[ERROR] ", format, args...)
}
