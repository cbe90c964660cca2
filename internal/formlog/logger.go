// Package formlog provides centralized structured logging for the
// engine and its consumers, adapted from the teacher's
// internal/log/logger.go: a swappable global slog.Logger with
// package-level Debug/Info/Warn/Error helpers, defaulting to console
// output until a caller redirects it to a file.
package formlog

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

var (
	global *slog.Logger
	output io.Writer   = os.Stdout
	level  slog.Leveler = slog.LevelInfo
)

func init() {
	rebuild()
}

func rebuild() {
	global = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
}

// SetFileOutput configures the package-level logger to write to the
// given file instead of stdout, preserving whatever level was set.
func SetFileOutput(filename string) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	output = file
	rebuild()
	return nil
}

// SetLevel adjusts the minimum level the package-level logger emits,
// preserving whatever output destination was set.
func SetLevel(l slog.Level) {
	level = l
	rebuild()
}

// WithSession scopes a logger to one form engine's session id, so every
// log line from a single run of a form can be correlated without the
// engine itself needing to format that field at every call site.
func WithSession(sessionID uuid.UUID) *slog.Logger {
	return global.With("session", sessionID.String())
}

func Debug(msg string, args ...any) { global.Debug(msg, args...) }
func Info(msg string, args ...any)  { global.Info(msg, args...) }
func Warn(msg string, args ...any)  { global.Warn(msg, args...) }
func Error(msg string, args ...any) { global.Error(msg, args...) }
