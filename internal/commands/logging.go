package commands

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/settle-dev/settle/internal/config"
)

// newLogger builds the CLI logger at the given level. Output goes to stderr
// so reports piped from stdout stay clean.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// envLogLevel returns the log level for runs outside a workspace, where
// there is no settle.yaml to read it from.
func envLogLevel() string {
	if lvl := os.Getenv(config.EnvLogLevel); lvl != "" {
		return lvl
	}
	return "info"
}
