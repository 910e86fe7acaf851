package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global SugaredLogger instance.
// Initialized with a no-op logger until Initialize is called.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize sets up the global logger with the given level and encoding.
// Encoding is "json" (production) or "console" (human readable, for local runs);
// an empty encoding means "json".
func Initialize(level, encoding string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	var cfg zap.Config
	switch encoding {
	case "", "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("unknown log encoding %q", encoding)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = logger.Sugar().With("service", "booktrack")
	return nil
}
