package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger creates a logger that captures logs for assertions
// The returned ObservedLogs can be used to verify log messages in tests
func TestLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	return logger, logs
}

// TestContext creates a context with a test logger
// Returns both the context and the observed logs for assertions
func TestContext() (context.Context, *observer.ObservedLogs) {
	logger, logs := TestLogger()
	ctx := ContextWithLogger(context.Background(), logger)
	return ctx, logs
}

// NopContext creates a context with a no-op logger (for benchmarks or when logs are not needed)
func NopContext() context.Context {
	return ContextWithLogger(context.Background(), zap.NewNop())
}

// Capture routes the package-level functions to an observer until the
// returned restore func runs
func Capture() (*observer.ObservedLogs, func()) {
	l, logs := TestLogger()

	mu.RLock()
	previous := logger
	mu.RUnlock()

	Set(l, nil)
	return logs, func() {
		mu.Lock()
		logger = previous
		mu.Unlock()
		if previous != nil {
			zap.ReplaceGlobals(previous.Desugar())
		} else {
			zap.ReplaceGlobals(zap.NewNop())
		}
	}
}
