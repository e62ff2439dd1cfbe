// Package logging builds the zap logger shared by the CLI and packages.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLevel  = "LOG_LEVEL"
	EnvFormat = "LOG_FORMAT"
)

// Formats accepted in LOG_FORMAT.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ConfigFromEnv reads logging configuration from environment variables
// with defaults. Unknown levels fall back to defaultLevel.
func ConfigFromEnv(getenv func(string) string, defaultLevel string) zap.Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	level := strings.ToLower(strings.TrimSpace(getenv(EnvLevel)))
	if level == "" {
		level = defaultLevel
	}
	format := strings.ToLower(strings.TrimSpace(getenv(EnvFormat)))
	if format == "" {
		format = FormatConsole
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level, defaultLevel))

	if format == FormatConsole {
		config.Development = true
		config.Encoding = FormatConsole
		config.EncoderConfig.TimeKey = ""
		config.EncoderConfig.CallerKey = ""
	} else {
		config.Encoding = FormatJSON
	}
	return config
}

// New builds a logger writing to w with the given config.
func New(w io.Writer, config zap.Config) *zap.Logger {
	if w == nil {
		return zap.NewNop()
	}
	var encoder zapcore.Encoder
	if config.Encoding == FormatJSON {
		encoder = zapcore.NewJSONEncoder(config.EncoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(config.EncoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), config.Level)
	options := []zap.Option{}
	if config.Development {
		options = append(options, zap.Development())
	}
	return zap.New(core, options...)
}

// FromEnv builds a logger writing to w from LOG_LEVEL and LOG_FORMAT.
func FromEnv(w io.Writer, defaultLevel string) *zap.Logger {
	return New(w, ConfigFromEnv(os.Getenv, defaultLevel))
}

func parseLevel(level, fallback string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	}
	if fallback != "" && fallback != level {
		return parseLevel(fallback, "")
	}
	return zap.InfoLevel
}
