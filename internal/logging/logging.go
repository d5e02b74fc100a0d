// Package logging builds the zap loggers shared by the wizard, the CLI and
// the analysis service.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yildizm/LifeStrat/internal/config"
)

// Options adjust the configured logger for the current command
type Options struct {
	// Verbose forces debug level regardless of the configured level
	Verbose bool

	// Interactive is set while a full-screen UI owns the terminal. Without
	// a log file the logger is then discarded.
	Interactive bool
}

// New creates a logger from the logging section of the config
func New(cfg config.LoggingConfig, opts Options) (*zap.Logger, error) {
	if cfg.File == "" && opts.Interactive {
		return zap.NewNop(), nil
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
