// Package logger builds the application logger.
package logger

import (
	"go.uber.org/zap"
)

// New creates a production zap logger at the given textual level.
func New(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
