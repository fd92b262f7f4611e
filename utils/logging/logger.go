package logging

import (
	"context"
	"log"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger
var cfg zap.Config

func init() {
	cfg = zap.Config{
		Encoding:         "json",
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			EncodeDuration: zapcore.MillisDurationEncoder,
		},
	}

	aLogger, err := cfg.Build()

	if err != nil {
		log.Fatalf("FATAL ERROR: Failed to build zap logger: %s", err.Error())
	}

	logger = aLogger
}

// Logger returns a zap logger with all available context
func Logger(ctx context.Context) *zap.Logger {
	return logger.With(GetValuesSlice(ctx)...)
}

// SetLevel sets the level by name. Unknown names fall back to info.
func SetLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		l = zapcore.InfoLevel
	}

	cfg.Level.SetLevel(l)
	return l
}

// Replace swaps the process logger. Used by tests to capture output.
func Replace(l *zap.Logger) func() {
	prev := logger
	logger = l
	return func() { logger = prev }
}
