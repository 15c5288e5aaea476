package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Init initializes the global logger with the specified output format:
// "console" (default, human-readable), "json", or "development".
func Init(outputFormat string, verbose bool) error {
	var cfg zap.Config

	switch outputFormat {
	case "json":
		cfg = zap.NewProductionConfig()
	case "development":
		cfg = zap.NewDevelopmentConfig()
	case "console":
		fallthrough
	default:
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}

// Sugar returns a sugared logger, falling back to a basic production logger
// if Init was never called (e.g. library usage outside the CLI).
func Sugar() *zap.SugaredLogger {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return logger.Sugar()
}

// Sync flushes any buffered log entries. Errors are intentionally ignored,
// matching the common behavior for stderr-backed encoders on most OSes.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
