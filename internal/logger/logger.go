// Package logger configures the process-wide zap logger. Call Init once at
// startup and log through zap.L() afterwards.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a development logger for dev and test environments and a
// JSON production logger otherwise, then installs it as zap's global.
func Init(env string) error {
	var cfg zap.Config
	switch env {
	case "dev", "development", "test", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build zap logger -> %w", err)
	}
	zap.ReplaceGlobals(l)
	return nil
}

// Sync flushes buffered entries of the global logger.
func Sync() {
	_ = zap.L().Sync()
}
