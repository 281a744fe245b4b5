// Package logging provides structured logging for the orbits game.
// It wraps Go's standard slog package with run IDs, so that every line
// written while one level is being played can be grouped, and with an
// attribute sanitizer.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnvVar names the environment variable that overrides the log level
const LevelEnvVar = "ORBITS_LOG_LEVEL"

// Logger wraps slog.Logger to provide application-specific logging functionality
// with run ID support and security-conscious formatting.
type Logger struct {
	*slog.Logger
}

// Options controls where and how a Logger writes.
type Options struct {
	// Writer receives log output. Nil means stderr, which keeps stdout free
	// for the terminal renderer.
	Writer io.Writer
	// Level is one of DEBUG, INFO, WARN or ERROR. Empty falls back to the
	// environment, then INFO.
	Level string
	// Format is "json" or "text". Empty means json.
	Format string
}

// NewLogger creates a new Logger instance with JSON output on stderr.
// The log level can be controlled via the ORBITS_LOG_LEVEL environment variable.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func NewLogger() *Logger {
	return New(Options{})
}

// New creates a Logger from explicit options. ORBITS_LOG_LEVEL, when set to
// a valid level, wins over opts.Level.
func New(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level, ok := levelFromEnv()
	if !ok {
		level, _ = ParseLevel(opts.Level)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitizeAttributes,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return &Logger{slog.New(handler)}
}

// Discard returns a Logger that drops everything
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// LogWithContext logs a message with automatic run ID extraction from context.
// If a run ID exists in the context, it will be included in the log entry.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if runID := GetRunID(ctx); runID != "" {
		args = append(args, "run_id", runID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

// runIDKey is the context key for run IDs
type runIDKey struct{}

// WithRunID adds a run ID to the context.
// If no run ID is provided, a new one will be generated.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		runID = GenerateRunID()
	}
	return context.WithValue(ctx, runIDKey{}, runID)
}

// GetRunID extracts the run ID from the context.
// Returns empty string if no run ID is present.
func GetRunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateRunID creates a new random run ID.
func GenerateRunID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// ParseLevel maps a level name onto a slog level. Unknown names report false
// and yield INFO.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// levelFromEnv determines the log level from environment variables.
func levelFromEnv() (slog.Level, bool) {
	return ParseLevel(os.Getenv(LevelEnvVar))
}

// sensitiveKeys are attribute key fragments whose values are never written.
var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"token", "auth", "authorization",
	"secret", "private",
	"cookie",
}

// sanitizeAttributes masks sensitive data in log attributes.
func sanitizeAttributes(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return slog.Attr{
				Key:   a.Key,
				Value: slog.StringValue("[REDACTED]"),
			}
		}
	}

	return a
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
