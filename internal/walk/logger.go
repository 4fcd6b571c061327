package walk

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the verbosity of a logger built by NewLogger.
type LogLevel int

const (
	LogLevelError LogLevel = iota // Errors only
	LogLevelWarn                  // Warnings, including access-denied at warn
	LogLevelInfo                  // Default for the command line tool
	LogLevelDebug                 // Walk summaries and skipped entries
)

// NewLogger builds a JSON production logger at the given level, or a
// colored development logger for LogLevelDebug. Unknown levels log at info.
func NewLogger(level LogLevel) *zap.Logger {
	if level == LogLevelDebug {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return build(config)
	}

	config := zap.NewProductionConfig()
	switch level {
	case LogLevelError:
		config.Level.SetLevel(zap.ErrorLevel)
	case LogLevelWarn:
		config.Level.SetLevel(zap.WarnLevel)
	case LogLevelInfo:
		config.Level.SetLevel(zap.InfoLevel)
	default:
		config.Level.SetLevel(zap.InfoLevel)
	}
	return build(config)
}

func build(config zap.Config) *zap.Logger {
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
