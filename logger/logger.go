// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"console"`
	Development bool   `env:"LOG_DEVELOPMENT"`
}

// New builds a logger from cfg. Unknown levels fall back to info.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "json":
		zc.Encoding = "json"
	case "console", "":
		zc.Encoding = "console"
	default:
		return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}
	// Per-frame warnings would otherwise flood the output.
	zc.Sampling = &zap.SamplingConfig{Initial: 20, Thereafter: 600}

	l, err := zc.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("logger: build: %w", err)
	}
	return l, nil
}

// Install builds a logger and makes it the zap global. The returned func
// flushes and restores the previous global.
func Install(cfg Config) (func(), error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	restore := zap.ReplaceGlobals(l.Named("foxtrot"))
	return func() {
		_ = l.Sync()
		restore()
	}, nil
}
