// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alessiobaldini01/Lookback-Pricing/internal/models"
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

// DefaultLogConfig returns the default logging configuration. Console
// output goes to stderr at warn level so stdout stays machine-readable.
func DefaultLogConfig() LogConfig {
	home, _ := os.UserHomeDir()
	return LogConfig{
		Level:      "warn",
		Console:    true,
		File:       false,
		FilePath:   filepath.Join(home, ".config", "lookback-pricer", "logs", "lookback.log"),
		MaxSize:    20,
		MaxBackups: 3,
		MaxAge:     30,
	}
}

// NewLoggerWithConfig creates a new logger with the specified configuration.
func NewLoggerWithConfig(cfg LogConfig) zerolog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg LogConfig, console io.Writer) zerolog.Logger {
	var writers []io.Writer

	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        console,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		})
	}

	// File writer with rotation
	if cfg.File && cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err == nil {
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
		writer = io.Discard
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// SetDebugLevel sets the global log level to debug.
func SetDebugLevel() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// WithOperation adds an operation name to the logger context.
func WithOperation(logger zerolog.Logger, operation string) zerolog.Logger {
	return logger.With().Str("operation", operation).Logger()
}

// WithKind adds the option kind to the logger context.
func WithKind(logger zerolog.Logger, kind string) zerolog.Logger {
	return logger.With().Str("kind", kind).Logger()
}

// LogValuation logs a completed valuation.
func LogValuation(logger zerolog.Logger, v models.Valuation) {
	logger.Info().
		Str("event", "valuation").
		Str("kind", v.Kind).
		Float64("spot", v.Spot).
		Int("paths", v.Paths).
		Int("steps", v.Steps).
		Uint64("seed", v.Seed).
		Float64("price", v.Price).
		Float64("std_err", v.Payoff.StdErr).
		Str("greeks_method", string(v.Method)).
		Msg("Option valued")
}

// LogRun logs the outcome and duration of a command.
func LogRun(logger zerolog.Logger, command string, duration time.Duration, err error) {
	event := logger.Debug().
		Str("event", "run").
		Str("command", command).
		Dur("duration", duration)

	if err != nil {
		event.Err(err).Msg("Command failed")
	} else {
		event.Msg("Command completed")
	}
}

// LogSweepPoint logs one priced point of a spot sweep.
func LogSweepPoint(logger zerolog.Logger, index int, p models.SweepPoint) {
	logger.Debug().
		Str("event", "sweep_point").
		Int("index", index).
		Float64("spot", p.Spot).
		Float64("price", p.Price).
		Float64("delta", p.Delta).
		Msg("Sweep point priced")
}
