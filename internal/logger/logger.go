package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	config "github.com/inference-gateway/gridpick/config"
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	logger  *zap.SugaredLogger
	logFile *os.File
)

// Init initializes the logger with the specified verbose level. Output goes
// to logging.dir/gridpick.log when a directory is configured, stderr otherwise.
func Init(verbose bool, cfg *config.Config) {
	level := zapcore.WarnLevel
	if verbose || (cfg != nil && cfg.Logging.Debug) {
		level = zapcore.DebugLevel
	}

	var out io.Writer = os.Stderr
	var file *os.File
	if cfg != nil && cfg.Logging.Dir != "" {
		f, err := openLogFile(cfg.Logging.Dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file, logging to stderr: %v\n", err)
		} else {
			out = f
			file = f
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(out),
		level,
	)

	Set(zap.New(core), file)
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, config.LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// Set replaces the package logger and the zap globals. file, when not nil,
// is closed by Close.
func Set(l *zap.Logger, file *os.File) {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil && logFile != file {
		_ = logFile.Close()
	}
	logger = l.Sugar()
	logFile = file
	zap.ReplaceGlobals(l)
}

// Close flushes buffered entries and closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		_ = logger.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if l := current(); l != nil {
		l.Debugw(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if l := current(); l != nil {
		l.Infow(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if l := current(); l != nil {
		l.Warnw(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if l := current(); l != nil {
		l.Errorw(msg, args...)
	}
}
