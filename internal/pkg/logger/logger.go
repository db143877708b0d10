package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config describes how the application logger is built
type Config struct {
	IsDevelopment     bool
	Encoding          string // "json" or "console"
	Level             string // debug, info, warn, error
	DisableCaller     bool
	DisableStacktrace bool
}

// DefaultConfig returns the mode defaults: console/debug in development, json/info otherwise.
// Non-empty level or encoding override them.
func DefaultConfig(dev bool, level, encoding string) *Config {
	cfg := &Config{
		Encoding: "json",
		Level:    "info",
	}
	if dev {
		cfg.IsDevelopment = true
		cfg.Encoding = "console"
		cfg.Level = "debug"
	}
	if level != "" {
		cfg.Level = level
	}
	if encoding != "" {
		cfg.Encoding = encoding
	}
	return cfg
}

// New builds a zap logger. An unknown level falls back to info.
func New(cfg *Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsDevelopment {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = cfg.Encoding
	zc.DisableCaller = cfg.DisableCaller
	zc.DisableStacktrace = cfg.DisableStacktrace
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Encoding == "console" {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return zc.Build()
}
