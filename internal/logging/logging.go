package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr. format "console" selects a
// human-readable encoder; anything else selects JSON, which keeps log
// lines distinguishable from a report written to stdout.
func New(format string, level zapcore.Level) *zap.Logger {
	return NewWithSink(zapcore.Lock(os.Stderr), format, level)
}

// NewWithSink builds a logger writing to ws.
func NewWithSink(ws zapcore.WriteSyncer, format string, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if strings.EqualFold(format, "console") {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, ws, level))
}

// Init builds a logger and installs it as the zap global.
func Init(format, level string) *zap.Logger {
	logger := New(format, ParseLevel(level))
	zap.ReplaceGlobals(logger)
	return logger
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to a
// zap level. Unknown strings default to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
