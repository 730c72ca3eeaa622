// Package logging provides centralized logging functionality for the application.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug for detailed troubleshooting information.
	LevelDebug LogLevel = "debug"
	// LevelInfo for general operational information.
	LevelInfo LogLevel = "info"
	// LevelWarn for potentially harmful situations.
	LevelWarn LogLevel = "warn"
	// LevelError for error events that might still allow the application to continue.
	LevelError LogLevel = "error"
)

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// AnnotationKind is the workflow command used to surface a message in the run summary.
type AnnotationKind string

const (
	AnnotationNotice  AnnotationKind = "notice"
	AnnotationWarning AnnotationKind = "warning"
	AnnotationError   AnnotationKind = "error"
)

var (
	// defaultLogger is the default logger instance.
	defaultLogger *slog.Logger

	// annotations receives GitHub Actions workflow commands; nil disables them.
	annotations io.Writer
)

// init sets up logging from LOG_LEVEL and enables annotations on Actions runners.
func init() {
	SetupLogger(os.Stdout, LogLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))))

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		annotations = os.Stdout
	}
}

// SetupLogger configures the logger with the specified output and level.
// Unknown or empty levels fall back to info.
func SetupLogger(w io.Writer, level LogLevel) {
	logLevel, ok := slogLevels[level]
	if !ok {
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Debug logs a message at debug level.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs a message at info level.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a message at warn level.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs a message at error level.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// SetAnnotationOutput redirects workflow commands to w. Passing nil turns them off.
func SetAnnotationOutput(w io.Writer) {
	annotations = w
}

// Annotate emits a workflow command such as "::warning::msg" so the message
// shows up on the run summary page. It is a no-op outside GitHub Actions.
func Annotate(kind AnnotationKind, msg string) {
	if annotations == nil {
		return
	}
	fmt.Fprintf(annotations, "::%s::%s\n", kind, escapeAnnotation(msg))
}

// escapeAnnotation encodes the characters the runner treats as command delimiters.
func escapeAnnotation(msg string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(msg)
}

// MaskSensitive masks sensitive data for logging.
func MaskSensitive(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 4 {
		return "<set>"
	}
	return value[:4] + "..." + strings.Repeat("*", 3)
}
