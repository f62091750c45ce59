// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string
	Console    bool
	File       bool
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// DefaultLogConfig returns the default logging configuration.
func DefaultLogConfig() LogConfig {
	home, _ := os.UserHomeDir()
	return LogConfig{
		Level:      "info",
		Console:    true,
		File:       true,
		FilePath:   filepath.Join(home, ".config", "stock-checkin", "logs", "checkin.log"),
		MaxSize:    20,
		MaxBackups: 5,
		MaxAge:     30,
	}
}

// NewLogger creates a new logger with default configuration.
func NewLogger() zerolog.Logger {
	return NewLoggerWithConfig(DefaultLogConfig())
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	var writers []io.Writer

	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	if cfg.File {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			})
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = os.Stderr
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	return zerolog.New(writer).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetDebugLevel sets the global log level to debug.
func SetDebugLevel() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// WithTicker adds a ticker symbol to the logger context.
func WithTicker(logger zerolog.Logger, ticker string) zerolog.Logger {
	return logger.With().Str("ticker", ticker).Logger()
}

// WithSource adds a data source name to the logger context.
func WithSource(logger zerolog.Logger, source string) zerolog.Logger {
	return logger.With().Str("source", source).Logger()
}

// LogFetch logs an external fetch.
func LogFetch(logger zerolog.Logger, source, ticker string, duration time.Duration, err error) {
	event := logger.Debug().
		Str("event", "fetch").
		Str("source", source).
		Str("ticker", ticker).
		Dur("duration", duration)

	if err != nil {
		event.Err(err).Msg("Fetch failed")
	} else {
		event.Msg("Fetch completed")
	}
}

// LogGuardrail logs a guardrail evaluation outcome.
func LogGuardrail(logger zerolog.Logger, status string, triggers int) {
	logger.Info().
		Str("event", "guardrail").
		Str("status", status).
		Int("triggers", triggers).
		Msg("Guardrail evaluation")
}

// LogReport logs a written report.
func LogReport(logger zerolog.Logger, path, status string) {
	logger.Info().
		Str("event", "report").
		Str("path", path).
		Str("status", status).
		Msg("Report written")
}
