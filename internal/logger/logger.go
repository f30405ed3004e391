package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents the log level
type Level string

const (
	LevelDebug Level = "debug" // Script text and raw interpreter output
	LevelInfo  Level = "info"  // Important steps
	LevelWarn  Level = "warn"  // Degraded features (e.g. image tools disabled)
	LevelError Level = "error" // Failures
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	File   string // optional log file path
	Pretty bool   // human-readable console output
}

// Logger provides structured logging for the server.
// It never writes to stdout: stdout carries the MCP protocol.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New creates a logger writing to stderr and, if configured, a file
func New(cfg Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var console io.Writer = os.Stderr
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	writers := []io.Writer{console}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl, file: file}, nil
}

// NewWithWriter creates a logger writing JSON lines to w (used by tests)
func NewWithWriter(w io.Writer, level Level) *Logger {
	lvl, err := zerolog.ParseLevel(string(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Close closes the log file, if any
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// With returns a child logger carrying an extra field
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger(), file: l.file}
}

// Debug logs debug information (only shown in verbose mode)
func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

// Info logs general information
func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Warn logs a recoverable problem
func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

// ToolCall logs a tool call with its arguments
func (l *Logger) ToolCall(toolName string, args string) {
	l.zl.Info().
		Str("tool", toolName).
		Str("args", compact(args, 500)).
		Msg("tool call")
}

// ToolResult logs a tool execution result
func (l *Logger) ToolResult(toolName string, success bool, output string, duration time.Duration) {
	evt := l.zl.Info()
	if !success {
		evt = l.zl.Warn()
	}
	evt.Str("tool", toolName).
		Bool("ok", success).
		Dur("duration", duration).
		Str("output", compact(output, 500)).
		Msg("tool result")
}

// compact limits output to two lines and limit bytes
func compact(s string, limit int) string {
	const maxLines = 2

	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	out := s
	truncatedLines := false
	if len(lines) > maxLines {
		out = strings.Join(lines[:maxLines], "\n")
		truncatedLines = true
	}

	if len(out) > limit {
		return out[:limit] + "..."
	}
	if truncatedLines {
		out += "\n..."
	}
	return out
}
