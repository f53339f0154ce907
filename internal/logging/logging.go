// Package logging builds the zap logger shared by the server and CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chazu/foilworks/internal/config"
)

// New returns a production zap logger configured from cfg. Verbose forces
// debug level regardless of cfg.Level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zcfg, err := Config(cfg, verbose)
	if err != nil {
		return nil, err
	}
	return zcfg.Build()
}

// Config translates cfg into a zap.Config without building it.
func Config(cfg config.LoggingConfig, verbose bool) (zap.Config, error) {
	zcfg := zap.NewProductionConfig()

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return zcfg, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "", "json":
		zcfg.Encoding = "json"
	case "console":
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return zcfg, fmt.Errorf("invalid log format %q", cfg.Format)
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg, nil
}
