// Package logging provides structured logging on log/slog for the simulator
// harness and its CLI.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

// Logger wraps slog.Logger with component and operation helpers.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level     string `json:"level" yaml:"level"`           // debug, info, warn, error
	Format    string `json:"format" yaml:"format"`         // text, json
	AddSource bool   `json:"add_source" yaml:"add_source"` // include source locations
}

// DefaultConfig logs info and above as text.
var DefaultConfig = Config{
	Level:  "info",
	Format: "text",
}

// Operation names a logged unit of work, such as a scenario run.
type Operation string

func (o Operation) LogValue() slog.Value {
	return slog.StringValue(string(o))
}

// Component names the subsystem emitting a log record.
type Component string

func (c Component) LogValue() slog.Value {
	return slog.StringValue(string(c))
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer, config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(config.Level),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(config.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithOperation creates a child logger with operation context.
func (l *Logger) WithOperation(op Operation) *Logger {
	return &Logger{Logger: l.With(slog.Any("operation", op))}
}

// WithComponent creates a child logger with component context.
func (l *Logger) WithComponent(component Component) *Logger {
	return &Logger{Logger: l.With(slog.Any("component", component))}
}

// APIErrorValuer renders a portal failure as a log group.
type APIErrorValuer struct {
	*types.APIError
}

func (e APIErrorValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(e.Kind)),
		slog.Int("code", e.Code),
		slog.String("message", e.Message),
	)
}

// LogError logs err at error level. Portal failures are logged as a
// structured group.
func (l *Logger) LogError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		args = append(args, slog.Any("api_error", APIErrorValuer{APIError: apiErr}))
	} else {
		args = append(args, slog.String("error", err.Error()))
	}
	for _, attr := range attrs {
		args = append(args, attr)
	}
	l.ErrorContext(ctx, msg, args...)
}

// LogOperation runs fn and logs its outcome and duration.
func (l *Logger) LogOperation(ctx context.Context, op Operation, fn func() error) error {
	start := time.Now()
	opLogger := l.WithOperation(op)
	opLogger.DebugContext(ctx, "operation started")

	err := fn()
	duration := time.Since(start)
	if err != nil {
		opLogger.LogError(ctx, err, "operation failed", slog.Duration("duration", duration))
		return err
	}
	opLogger.InfoContext(ctx, "operation completed", slog.Duration("duration", duration))
	return nil
}
