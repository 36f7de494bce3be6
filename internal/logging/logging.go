// Package logging configures the application's structured loggers.
// It wires a JSON handler to stdout for machine consumption and a text
// handler to stderr for humans, plus optional rotated file logging.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	structuredLogger    *slog.Logger
	humanReadableLogger *slog.Logger
)

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		label, ok := levelNames[level]
		if !ok {
			label = level.String()
		}
		a.Value = slog.StringValue(label)
	}
	return a
}

// Init initializes the logging system with structured and human-readable loggers.
func Init(level slog.Level) {
	initWithWriters(os.Stdout, os.Stderr, level)
}

func initWithWriters(structuredOut, humanOut io.Writer, level slog.Level) {
	structuredLogger = slog.New(slog.NewJSONHandler(structuredOut, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	}))
	humanReadableLogger = slog.New(slog.NewTextHandler(humanOut, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	}))
	slog.SetDefault(structuredLogger)
}

// SetOutput redirects logger output, e.g. for tests.
func SetOutput(structuredOut, humanOut io.Writer) {
	initWithWriters(structuredOut, humanOut, slog.LevelDebug)
}

// Structured returns the globally configured structured (JSON) logger.
// Returns nil if Init has not been called.
func Structured() *slog.Logger {
	return structuredLogger
}

// HumanReadable returns the globally configured human-readable logger.
func HumanReadable() *slog.Logger {
	return humanReadableLogger
}

// ForService creates a logger with the 'service' attribute added, falling
// back to the process default logger when Init has not been called.
func ForService(serviceName string) *slog.Logger {
	if structuredLogger == nil {
		return slog.Default().With("service", serviceName)
	}
	return structuredLogger.With("service", serviceName)
}

// Fatal logs a message at the custom fatal level and exits.
func Fatal(msg string, args ...any) {
	slog.Log(context.TODO(), LevelFatal, msg, args...)
	os.Exit(1)
}

// FileConfig holds rotation settings for file-backed loggers.
type FileConfig struct {
	Path       string
	MaxSizeMB  int // rotate after this many megabytes
	MaxBackups int // rotated files to keep
	MaxAgeDays int // days to keep rotated files
}

// NewFileLogger creates a slog.Logger writing rotated JSON logs to cfg.Path.
// It returns the logger and a close function for the underlying writer.
func NewFileLogger(cfg FileConfig, serviceName string, level slog.Level) (*slog.Logger, func() error, error) {
	logDir := filepath.Dir(cfg.Path)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	if writer.MaxSize <= 0 {
		writer.MaxSize = 100
	}
	if writer.MaxBackups <= 0 {
		writer.MaxBackups = 3
	}
	if writer.MaxAge <= 0 {
		writer.MaxAge = 28
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})
	logger := slog.New(handler).With("service", serviceName)

	return logger, writer.Close, nil
}
