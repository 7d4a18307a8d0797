// Package logger builds the zap logger shared by the server and the
// booking logger binary.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log encoding and destinations.
type Options struct {
	Dev   bool   // human readable console output
	Level string // debug, info, warn or error
	File  string // optional file appended to besides stderr
}

// New returns a development logger in dev and a JSON production logger
// otherwise. When File is set, logs are written there as well.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Dev {
		cfg = zap.NewDevelopmentConfig()
	}

	if opts.Level != "" {
		lvl, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	if opts.File != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, opts.File)
		cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, opts.File)
	}
	return cfg.Build()
}
