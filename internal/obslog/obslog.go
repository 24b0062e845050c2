// Package obslog wires up the structured logger threaded through the
// saturation engine and REPL. A single *zap.SugaredLogger is constructed
// once at process start and passed down explicitly, the way codenerd's
// internal/logging package is wired through its Cortex.
package obslog

import "go.uber.org/zap"

// New builds the process logger. quiet drops everything below Warn, for
// REPL sessions that only want derivation output on stdout.
func New(quiet bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	cfg.DisableStacktrace = true
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// Noop returns a logger that discards everything, for tests that don't
// want saturation progress on stderr.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
